package services

import (
	"context"
	"strings"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/models"
	"github.com/taskvault/backend/internal/repositories"
	"github.com/taskvault/backend/internal/validation"
)

// ListRepository is the interface that wraps methods for lists table data
// access. Every method takes the owner's user ID; unscoped list access does
// not exist.
type ListRepository interface {
	Create(ctx context.Context, userID int, title string, description *string) (int, error)
	GetByID(ctx context.Context, listID, userID int) (*models.List, error)
	GetAllWithCounts(ctx context.Context, userID int) ([]models.ListWithCounts, error)
	Update(ctx context.Context, listID, userID int, updates repositories.ListUpdate) error
	Delete(ctx context.Context, listID, userID int) error
	DeleteAll(ctx context.Context, userID int) error
	ClearTasks(ctx context.Context, listID, userID int) error
	ClearAllTasks(ctx context.Context, userID int) error
}

// ListTaskReader is the task access the list service needs to embed tasks in
// list views
type ListTaskReader interface {
	GetAll(ctx context.Context, userID int) ([]models.Task, error)
	GetByListID(ctx context.Context, listID, userID int) ([]models.Task, error)
}

// listService implements list business logic
type listService struct {
	listRepo ListRepository
	taskRepo ListTaskReader
}

// NewListService creates a new list service
func NewListService(listRepo ListRepository, taskRepo ListTaskReader) *listService {
	return &listService{
		listRepo: listRepo,
		taskRepo: taskRepo,
	}
}

// Create validates and stores a new list, returning the canonical row
func (s *listService) Create(ctx context.Context, userID int, req *models.CreateListRequest) (*models.List, error) {
	if err := validation.ValidateTitle(req.Title); err != nil {
		return nil, err
	}

	description := req.Description
	if description != nil {
		if err := validation.ValidateDescription(*description); err != nil {
			return nil, err
		}
	}

	listID, err := s.listRepo.Create(ctx, userID, strings.TrimSpace(req.Title), description)
	if err != nil {
		return nil, err
	}

	return s.listRepo.GetByID(ctx, listID, userID)
}

// GetAll retrieves the caller's lists with task counts, newest first
func (s *listService) GetAll(ctx context.Context, userID int) ([]models.ListWithCounts, error) {
	return s.listRepo.GetAllWithCounts(ctx, userID)
}

// GetAllWithTasks retrieves the caller's lists with their tasks embedded.
// Tasks are fetched once and grouped to avoid a query per list.
func (s *listService) GetAllWithTasks(ctx context.Context, userID int) ([]models.ListWithTasks, error) {
	lists, err := s.listRepo.GetAllWithCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasksByList := make(map[int][]models.Task, len(lists))
	for _, task := range tasks {
		tasksByList[task.ListID] = append(tasksByList[task.ListID], task)
	}

	result := make([]models.ListWithTasks, 0, len(lists))
	for _, list := range lists {
		listTasks := tasksByList[list.ID]
		if listTasks == nil {
			listTasks = []models.Task{}
		}
		result = append(result, models.ListWithTasks{ListWithCounts: list, Tasks: listTasks})
	}

	return result, nil
}

// GetByID retrieves one of the caller's lists
func (s *listService) GetByID(ctx context.Context, listID, userID int) (*models.List, error) {
	return s.listRepo.GetByID(ctx, listID, userID)
}

// GetByIDWithTasks retrieves one of the caller's lists with its tasks
func (s *listService) GetByIDWithTasks(ctx context.Context, listID, userID int) (*models.ListDetail, error) {
	list, err := s.listRepo.GetByID(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.GetByListID(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return &models.ListDetail{List: *list, Tasks: tasks}, nil
}

// Update validates and applies a partial update, returning the canonical row
func (s *listService) Update(ctx context.Context, listID, userID int, req *models.UpdateListRequest) (*models.List, error) {
	if req.Title == nil && req.Description == nil {
		return nil, apperrors.Validation("At least one field (title or description) is required for update")
	}

	updates := repositories.ListUpdate{}

	if req.Title != nil {
		if err := validation.ValidateTitle(*req.Title); err != nil {
			return nil, err
		}
		trimmed := strings.TrimSpace(*req.Title)
		updates.Title = &trimmed
	}

	if req.Description != nil {
		if err := validation.ValidateDescription(*req.Description); err != nil {
			return nil, err
		}
		updates.Description = req.Description
	}

	// Ownership check before the write; a miss is indistinguishable from a
	// nonexistent list
	if _, err := s.listRepo.GetByID(ctx, listID, userID); err != nil {
		return nil, err
	}

	if err := s.listRepo.Update(ctx, listID, userID, updates); err != nil {
		return nil, err
	}

	return s.listRepo.GetByID(ctx, listID, userID)
}

// Delete removes one of the caller's lists together with its tasks
func (s *listService) Delete(ctx context.Context, listID, userID int) error {
	return s.listRepo.Delete(ctx, listID, userID)
}

// DeleteAll removes every list owned by the caller
func (s *listService) DeleteAll(ctx context.Context, userID int) error {
	return s.listRepo.DeleteAll(ctx, userID)
}

// Clear removes all tasks from one of the caller's lists, keeping the list
func (s *listService) Clear(ctx context.Context, listID, userID int) error {
	if _, err := s.listRepo.GetByID(ctx, listID, userID); err != nil {
		return err
	}

	return s.listRepo.ClearTasks(ctx, listID, userID)
}

// ClearAll removes all tasks from every list owned by the caller
func (s *listService) ClearAll(ctx context.Context, userID int) error {
	return s.listRepo.ClearAllTasks(ctx, userID)
}
