package services

import (
	"context"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
	"github.com/taskvault/backend/internal/repositories"
)

// PriorityRepository is the interface that wraps methods for priorities
// table data access
type PriorityRepository interface {
	GetAll(ctx context.Context) ([]models.Priority, error)
	GetByID(ctx context.Context, priorityID int) (*models.Priority, error)
	GetByLevel(ctx context.Context, level int) (*models.Priority, error)
	Create(ctx context.Context, priority *models.Priority) error
	Update(ctx context.Context, priorityID int, updates repositories.PriorityUpdate) error
	Delete(ctx context.Context, priorityID int) error
}

// priorityService implements priority reference data logic
type priorityService struct {
	priorityRepo PriorityRepository
}

// NewPriorityService creates a new priority service
func NewPriorityService(priorityRepo PriorityRepository) *priorityService {
	return &priorityService{
		priorityRepo: priorityRepo,
	}
}

// GetAll retrieves all priorities in ascending severity
func (s *priorityService) GetAll(ctx context.Context) ([]models.Priority, error) {
	return s.priorityRepo.GetAll(ctx)
}

// GetByID retrieves a priority by ID
func (s *priorityService) GetByID(ctx context.Context, priorityID int) (*models.Priority, error) {
	return s.priorityRepo.GetByID(ctx, priorityID)
}

// GetByLevel retrieves a priority by severity level
func (s *priorityService) GetByLevel(ctx context.Context, level int) (*models.Priority, error) {
	return s.priorityRepo.GetByLevel(ctx, level)
}

// Create validates and stores a new priority (admin only)
func (s *priorityService) Create(ctx context.Context, req *models.CreatePriorityRequest) (*models.Priority, error) {
	if req.Name == "" || req.Level == nil {
		return nil, apperrors.Validation("Name and level are required")
	}

	if _, err := s.priorityRepo.GetByLevel(ctx, *req.Level); err == nil {
		return nil, apperrors.Conflict("Priority level already exists")
	} else if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	priority := &models.Priority{
		Name:  req.Name,
		Level: *req.Level,
	}

	if err := s.priorityRepo.Create(ctx, priority); err != nil {
		return nil, err
	}

	return s.priorityRepo.GetByID(ctx, priority.ID)
}

// Update validates and applies a partial priority update (admin only)
func (s *priorityService) Update(ctx context.Context, priorityID int, req *models.UpdatePriorityRequest) (*models.Priority, error) {
	if req.Name == nil && req.Level == nil {
		return nil, apperrors.Validation("At least one field (name or level) is required for update")
	}

	existing, err := s.priorityRepo.GetByID(ctx, priorityID)
	if err != nil {
		return nil, err
	}

	if req.Level != nil && *req.Level != existing.Level {
		if _, err := s.priorityRepo.GetByLevel(ctx, *req.Level); err == nil {
			return nil, apperrors.Conflict("Priority level already exists")
		} else if apperrors.KindOf(err) != apperrors.KindNotFound {
			return nil, err
		}
	}

	updates := repositories.PriorityUpdate{
		Name:  req.Name,
		Level: req.Level,
	}

	if err := s.priorityRepo.Update(ctx, priorityID, updates); err != nil {
		return nil, err
	}

	return s.priorityRepo.GetByID(ctx, priorityID)
}

// Delete removes a priority (admin only). Tasks referencing it fall back to
// a null priority through the schema.
func (s *priorityService) Delete(ctx context.Context, priorityID int) error {
	return s.priorityRepo.Delete(ctx, priorityID)
}
