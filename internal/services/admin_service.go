package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/auth"
	"github.com/taskvault/backend/internal/config"
	"github.com/taskvault/backend/internal/models"
	"github.com/taskvault/backend/internal/repositories"
)

// AdminUserRepository is the interface that wraps methods for users table
// data access needed by admin user management
type AdminUserRepository interface {
	userStore
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, userID int, updates repositories.UserUpdate) error
	Delete(ctx context.Context, userID int) error
}

// adminService implements admin user management and startup seeding
type adminService struct {
	userRepo AdminUserRepository
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo AdminUserRepository, logger *zap.Logger) *adminService {
	return &adminService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetAllUsers retrieves every user
func (s *adminService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// GetUserByID retrieves a user by ID
func (s *adminService) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// CreateUser creates a regular user on behalf of an admin, with the same
// validation as self-registration
func (s *adminService) CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.FirstName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.Validation("First name, username, email and password are required")
	}

	return createUser(ctx, s.userRepo, req, models.RoleUser)
}

// UpdateUser applies a partial update to a user. Fields absent from the
// request stay untouched; username/email are normalized and re-checked for
// duplicates only when they actually change.
func (s *adminService) UpdateUser(ctx context.Context, userID int, req *models.UpdateUserRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := repositories.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))
		if username != existing.Username {
			taken, err := s.userRepo.ExistsByUsername(ctx, username)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.Conflict("Username is already taken")
			}
		}
		updates.Username = &username
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailRegex.MatchString(email) {
			return nil, apperrors.Validation("Invalid email format")
		}
		if email != existing.Email {
			taken, err := s.userRepo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperrors.Conflict("Email is already registered")
			}
		}
		updates.Email = &email
	}

	if req.Password != nil {
		if len(*req.Password) < passwordMinLength {
			return nil, apperrors.Validation("Password must be at least 8 characters long")
		}
		passwordHash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		updates.PasswordHash = &passwordHash
	}

	if !updates.HasChanges() {
		return nil, apperrors.Validation("At least one field to update must be provided")
	}

	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// DeleteUser removes a user; their lists and tasks cascade in the schema
func (s *adminService) DeleteUser(ctx context.Context, userID int) error {
	return s.userRepo.Delete(ctx, userID)
}

// EnsureAdminUser seeds the configured admin account if it is absent
func (s *adminService) EnsureAdminUser(ctx context.Context, cfg config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	lastName := cfg.LastName
	req := &models.RegisterRequest{
		FirstName: cfg.FirstName,
		LastName:  &lastName,
		Username:  cfg.Username,
		Email:     cfg.Email,
		Password:  cfg.Password,
	}

	user, err := createUser(ctx, s.userRepo, req, models.RoleAdmin)
	if err != nil {
		return err
	}

	s.logger.Info("admin user seeded", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return nil
}
