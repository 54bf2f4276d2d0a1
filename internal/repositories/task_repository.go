package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
)

// TaskUpdate describes a partial task update. Nil fields are left untouched.
type TaskUpdate struct {
	ListID      *int
	Title       *string
	Description *string
	PriorityID  *int
	DueDate     *time.Time
	IsCompleted *bool
}

// HasChanges reports whether any field is set
func (u TaskUpdate) HasChanges() bool {
	return u.ListID != nil || u.Title != nil || u.Description != nil ||
		u.PriorityID != nil || u.DueDate != nil || u.IsCompleted != nil
}

// taskRepository implements task data access. Tasks never store their owner;
// every statement resolves ownership through the parent list.
type taskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) *taskRepository {
	return &taskRepository{
		db: db,
	}
}

const taskColumns = "task_id, list_id, title, description, priority_id, due_date, is_completed, created_at, updated_at"

// ownedListsSubquery scopes a task statement to lists owned by the caller
const ownedListsSubquery = "list_id IN (SELECT list_id FROM lists WHERE user_id = ?)"

// Create inserts a new task and returns its ID. The caller must have already
// verified that the target list belongs to the user.
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (list_id, title, description, priority_id, due_date)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, task.ListID, task.Title, task.Description, task.PriorityID, task.DueDate)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	task.ID = int(id)
	return nil
}

// GetByID retrieves a task reachable through a list owned by the user
func (r *taskRepository) GetByID(ctx context.Context, taskID, userID int) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = ? AND ` + ownedListsSubquery + ` LIMIT 1`

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&task.ID,
		&task.ListID,
		&task.Title,
		&task.Description,
		&task.PriorityID,
		&task.DueDate,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

// GetAll retrieves every task reachable through the user's lists
func (r *taskRepository) GetAll(ctx context.Context, userID int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + ownedListsSubquery
	return r.queryTasks(ctx, query, userID)
}

// GetByListID retrieves the tasks of one owned list
func (r *taskRepository) GetByListID(ctx context.Context, listID, userID int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE list_id = ? AND ` + ownedListsSubquery
	return r.queryTasks(ctx, query, listID, userID)
}

// GetPending retrieves the user's incomplete tasks
func (r *taskRepository) GetPending(ctx context.Context, userID int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE is_completed = false AND ` + ownedListsSubquery
	return r.queryTasks(ctx, query, userID)
}

// GetDueToday retrieves the user's tasks due on the current date
func (r *taskRepository) GetDueToday(ctx context.Context, userID int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE due_date IS NOT NULL AND DATE(due_date) = CURDATE() AND ` + ownedListsSubquery
	return r.queryTasks(ctx, query, userID)
}

// GetOverdue retrieves the user's incomplete tasks whose due date has passed
func (r *taskRepository) GetOverdue(ctx context.Context, userID int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE due_date IS NOT NULL AND due_date < NOW() AND is_completed = false AND ` + ownedListsSubquery
	return r.queryTasks(ctx, query, userID)
}

// Update applies a partial update to a task and advances the parent list's
// updated_at inside the same transaction. listID is the task's parent after
// the update (it changes when the task is being moved).
func (r *taskRepository) Update(ctx context.Context, taskID, listID, userID int, updates TaskUpdate) error {
	builder := sq.Update("tasks")

	if updates.ListID != nil {
		builder = builder.Set("list_id", *updates.ListID)
	}
	if updates.Title != nil {
		builder = builder.Set("title", *updates.Title)
	}
	if updates.Description != nil {
		builder = builder.Set("description", *updates.Description)
	}
	if updates.PriorityID != nil {
		builder = builder.Set("priority_id", *updates.PriorityID)
	}
	if updates.DueDate != nil {
		builder = builder.Set("due_date", *updates.DueDate)
	}
	if updates.IsCompleted != nil {
		builder = builder.Set("is_completed", *updates.IsCompleted)
	}

	query, args, err := builder.
		Where(sq.Eq{"task_id": taskID}).
		Where(ownedListsSubquery, userID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if err := touchList(ctx, tx, listID, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task update: %w", err)
	}

	return nil
}

// UpdateStatus sets a task's completion flag and advances the parent list's
// updated_at inside the same transaction
func (r *taskRepository) UpdateStatus(ctx context.Context, taskID, listID, userID int, isCompleted bool) error {
	query := `UPDATE tasks SET is_completed = ? WHERE task_id = ? AND ` + ownedListsSubquery

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, isCompleted, taskID, userID); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	if err := touchList(ctx, tx, listID, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status update: %w", err)
	}

	return nil
}

// Delete removes a task reachable through an owned list
func (r *taskRepository) Delete(ctx context.Context, taskID, userID int) error {
	query := `DELETE FROM tasks WHERE task_id = ? AND ` + ownedListsSubquery

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("Task not found")
	}

	return nil
}

// touchList advances an owned list's updated_at as part of a task write
func touchList(ctx context.Context, tx *sql.Tx, listID, userID int) error {
	query := `UPDATE lists SET updated_at = CURRENT_TIMESTAMP WHERE list_id = ? AND user_id = ?`

	if _, err := tx.ExecContext(ctx, query, listID, userID); err != nil {
		return fmt.Errorf("failed to update list timestamp: %w", err)
	}

	return nil
}

// queryTasks runs a multi-row task query and scans the results
func (r *taskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		err := rows.Scan(
			&task.ID,
			&task.ListID,
			&task.Title,
			&task.Description,
			&task.PriorityID,
			&task.DueDate,
			&task.IsCompleted,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}
