// Package services implements the business logic between handlers and
// repositories. Repository interfaces are declared here, on the consumer
// side.
package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/taskvault/backend/internal/apperrors"
	"github.com/taskvault/backend/internal/auth"
	"github.com/taskvault/backend/internal/models"
)

// UserRepository is the interface that wraps methods for users table data
// access needed by the auth flows
type UserRepository interface {
	// Method Create inserts a new user and fills in its generated ID.
	Create(ctx context.Context, user *models.User) error
	// Method GetByID retrieves a user by ID.
	//
	// If no such user exists, a not-found error is returned together with a
	// "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method GetByEmail retrieves a user by email.
	//
	// If no such user exists, a not-found error is returned together with a
	// "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// authService implements registration, login and current-user lookup
type authService struct {
	userRepo     UserRepository
	tokenManager *auth.TokenManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenManager *auth.TokenManager) *authService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordMinLength = 8

// Register creates a new user account and returns it with a session token
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	if req.FirstName == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, "", apperrors.Validation("First name, username, email and password are required")
	}

	user, err := createUser(ctx, s.userRepo, req, models.RoleUser)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokenManager.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}

	return user, token, nil
}

// Login authenticates a user by email and password and returns a session
// token. Unknown email and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", apperrors.Validation("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, "", invalidCredentials()
		}
		return nil, "", err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", invalidCredentials()
	}

	token, err := s.tokenManager.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}

	return user, token, nil
}

// GetCurrentUser retrieves the authenticated caller's user row
func (s *authService) GetCurrentUser(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func invalidCredentials() error {
	return &apperrors.Error{Kind: apperrors.KindUnauthenticated, Message: "Invalid credentials"}
}

// userStore is the subset of user data access shared by registration and
// admin user creation
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID int) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// createUser validates registration input, checks for duplicates, stores the
// user with a hashed password and re-fetches the canonical row
func createUser(ctx context.Context, repo userStore, req *models.RegisterRequest, role models.Role) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if !emailRegex.MatchString(email) {
		return nil, apperrors.Validation("Invalid email format")
	}

	if len(req.Password) < passwordMinLength {
		return nil, apperrors.Validation("Password must be at least 8 characters long")
	}

	usernameTaken, err := repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if usernameTaken {
		return nil, apperrors.Conflict("Username is already taken")
	}

	emailTaken, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperrors.Conflict("Email is already registered")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return repo.GetByID(ctx, user.ID)
}
