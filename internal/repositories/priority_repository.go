package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
)

// PriorityUpdate describes a partial priority update
type PriorityUpdate struct {
	Name  *string
	Level *int
}

// priorityRepository implements priority data access
type priorityRepository struct {
	db *sql.DB
}

// NewPriorityRepository creates a new priority repository
func NewPriorityRepository(db *sql.DB) *priorityRepository {
	return &priorityRepository{
		db: db,
	}
}

// GetAll retrieves all priorities in ascending severity
func (r *priorityRepository) GetAll(ctx context.Context) ([]models.Priority, error) {
	query := `SELECT priority_id, name, level FROM priorities ORDER BY level`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query priorities: %w", err)
	}
	defer rows.Close()

	var priorities []models.Priority
	for rows.Next() {
		var priority models.Priority
		if err := rows.Scan(&priority.ID, &priority.Name, &priority.Level); err != nil {
			return nil, fmt.Errorf("failed to scan priority: %w", err)
		}
		priorities = append(priorities, priority)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return priorities, nil
}

// GetByID retrieves a priority by ID
func (r *priorityRepository) GetByID(ctx context.Context, priorityID int) (*models.Priority, error) {
	query := `SELECT priority_id, name, level FROM priorities WHERE priority_id = ? LIMIT 1`

	priority := &models.Priority{}
	err := r.db.QueryRowContext(ctx, query, priorityID).Scan(&priority.ID, &priority.Name, &priority.Level)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Priority not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get priority by id: %w", err)
	}

	return priority, nil
}

// GetByLevel retrieves a priority by its severity level
func (r *priorityRepository) GetByLevel(ctx context.Context, level int) (*models.Priority, error) {
	query := `SELECT priority_id, name, level FROM priorities WHERE level = ? LIMIT 1`

	priority := &models.Priority{}
	err := r.db.QueryRowContext(ctx, query, level).Scan(&priority.ID, &priority.Name, &priority.Level)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Priority level not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get priority by level: %w", err)
	}

	return priority, nil
}

// GetLowest retrieves the lowest-severity priority, used as the default for
// tasks created without one
func (r *priorityRepository) GetLowest(ctx context.Context) (*models.Priority, error) {
	query := `SELECT priority_id, name, level FROM priorities ORDER BY level ASC LIMIT 1`

	priority := &models.Priority{}
	err := r.db.QueryRowContext(ctx, query).Scan(&priority.ID, &priority.Name, &priority.Level)

	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("Priority not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lowest priority: %w", err)
	}

	return priority, nil
}

// Create inserts a new priority
func (r *priorityRepository) Create(ctx context.Context, priority *models.Priority) error {
	query := `INSERT INTO priorities (name, level) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, priority.Name, priority.Level)
	if err != nil {
		return fmt.Errorf("failed to create priority: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	priority.ID = int(id)
	return nil
}

// Update applies a partial update to a priority
func (r *priorityRepository) Update(ctx context.Context, priorityID int, updates PriorityUpdate) error {
	builder := sq.Update("priorities")

	if updates.Name != nil {
		builder = builder.Set("name", *updates.Name)
	}
	if updates.Level != nil {
		builder = builder.Set("level", *updates.Level)
	}

	query, args, err := builder.Where(sq.Eq{"priority_id": priorityID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update priority: %w", err)
	}

	return nil
}

// Delete removes a priority. Dependent tasks fall back to NULL through the
// foreign key, the delete never blocks on them.
func (r *priorityRepository) Delete(ctx context.Context, priorityID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM priorities WHERE priority_id = ?`, priorityID)
	if err != nil {
		return fmt.Errorf("failed to delete priority: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.NotFound("Priority not found")
	}

	return nil
}
