package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
)

// ListUpdate describes a partial list update. Nil fields are left untouched.
type ListUpdate struct {
	Title       *string
	Description *string
}

// listRepository implements list data access. Every statement carries the
// owner predicate; a list that is not owned by the caller behaves exactly
// like a list that does not exist.
type listRepository struct {
	db *sql.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *sql.DB) *listRepository {
	return &listRepository{
		db: db,
	}
}

// Create inserts a new list for the owner and returns its ID
func (r *listRepository) Create(ctx context.Context, userID int, title string, description *string) (int, error) {
	query := `
		INSERT INTO lists (user_id, title, description)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, userID, title, description)
	if err != nil {
		return 0, fmt.Errorf("failed to create list: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return int(id), nil
}

// GetByID retrieves a list scoped to its owner
func (r *listRepository) GetByID(ctx context.Context, listID, userID int) (*models.List, error) {
	query := `
		SELECT list_id, user_id, title, description, created_at, updated_at
		FROM lists
		WHERE list_id = ? AND user_id = ?
		LIMIT 1
	`

	list := &models.List{}
	err := r.db.QueryRowContext(ctx, query, listID, userID).Scan(
		&list.ID,
		&list.UserID,
		&list.Title,
		&list.Description,
		&list.CreatedAt,
		&list.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("List not found!")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list by id: %w", err)
	}

	return list, nil
}

// GetAllWithCounts retrieves the owner's lists with total and pending task
// counts, newest-created first
func (r *listRepository) GetAllWithCounts(ctx context.Context, userID int) ([]models.ListWithCounts, error) {
	query := `
		SELECT
			l.list_id,
			l.user_id,
			l.title,
			l.description,
			l.created_at,
			l.updated_at,
			COUNT(t.task_id) AS total_tasks,
			COALESCE(CAST(SUM(CASE WHEN t.is_completed = 0 THEN 1 ELSE 0 END) AS UNSIGNED), 0) AS pending_tasks
		FROM lists l
		LEFT JOIN tasks t ON l.list_id = t.list_id
		WHERE l.user_id = ?
		GROUP BY l.list_id, l.user_id, l.title, l.description, l.created_at, l.updated_at
		ORDER BY l.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []models.ListWithCounts
	for rows.Next() {
		var list models.ListWithCounts
		err := rows.Scan(
			&list.ID,
			&list.UserID,
			&list.Title,
			&list.Description,
			&list.CreatedAt,
			&list.UpdatedAt,
			&list.TotalTasks,
			&list.PendingTasks,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lists, nil
}

// Update applies a partial update to an owned list
func (r *listRepository) Update(ctx context.Context, listID, userID int, updates ListUpdate) error {
	builder := sq.Update("lists")

	if updates.Title != nil {
		builder = builder.Set("title", *updates.Title)
	}
	if updates.Description != nil {
		builder = builder.Set("description", *updates.Description)
	}

	query, args, err := builder.
		Where(sq.Eq{"list_id": listID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}

	return nil
}

// Delete removes an owned list; its tasks cascade in the schema
func (r *listRepository) Delete(ctx context.Context, listID, userID int) error {
	query := `DELETE FROM lists WHERE list_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("List not found!")
	}

	return nil
}

// DeleteAll removes every list owned by the user
func (r *listRepository) DeleteAll(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete lists: %w", err)
	}
	return nil
}

// ClearTasks removes all tasks from an owned list, keeping the list row.
// Clearing an already-empty list is a no-op, not an error.
func (r *listRepository) ClearTasks(ctx context.Context, listID, userID int) error {
	query := `
		DELETE FROM tasks
		WHERE list_id = ? AND list_id IN (
			SELECT list_id FROM lists WHERE user_id = ?
		)
	`

	if _, err := r.db.ExecContext(ctx, query, listID, userID); err != nil {
		return fmt.Errorf("failed to clear list tasks: %w", err)
	}

	return nil
}

// ClearAllTasks removes all tasks from every list owned by the user
func (r *listRepository) ClearAllTasks(ctx context.Context, userID int) error {
	query := `
		DELETE FROM tasks
		WHERE list_id IN (
			SELECT list_id FROM lists WHERE user_id = ?
		)
	`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	return nil
}
