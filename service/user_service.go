package service

import (
	"context"
	"errors"
	"time"

	"hoku-backend/apperr"
	"hoku-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the user persistence surface for account management.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailForAuth(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.User, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

// UserService handles account reads, profile updates, deletion and
// login token issuance.
type UserService struct {
	store     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *ActivityLogger
}

// UserServiceOption is a functional option for UserService
type UserServiceOption func(*UserService)

// UserWithStore sets the user store
func UserWithStore(store UserStore) UserServiceOption {
	return func(s *UserService) {
		s.store = store
	}
}

// UserWithJWTSecret sets the token signing secret
func UserWithJWTSecret(secret string) UserServiceOption {
	return func(s *UserService) {
		s.jwtSecret = []byte(secret)
	}
}

// UserWithActivityLogger sets the activity logger
func UserWithActivityLogger(logger *ActivityLogger) UserServiceOption {
	return func(s *UserService) {
		s.logger = logger
	}
}

// NewUserService creates a new user service
func NewUserService(opts ...UserServiceOption) *UserService {
	s := &UserService{tokenTTL: time.Hour}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	EmailID  string
	Password string
}

// LoginResult carries the authenticated user and a signed token
type LoginResult struct {
	User  *models.User
	Token string
}

// Login verifies credentials and issues an HS256 token valid for one
// hour. Wrong email and wrong password both surface as the same error.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if s.store == nil {
		return nil, errors.New("user store not set")
	}

	user, err := s.store.FindByEmailForAuth(ctx, req.EmailID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("INVALID_CREDENTIALS", "invalid email or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.NotFound("INVALID_CREDENTIALS", "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.NotFound("INVALID_CREDENTIALS", "invalid email or password")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.logger.Log(ctx, &models.ActivityLog{
		UserID:        user.ID,
		ActionType:    "LOGIN",
		SourceFeature: "auth",
		Status:        models.ActivitySuccess,
	})

	return &LoginResult{User: user, Token: signed}, nil
}

// GetUserRequest represents a request to fetch one user
type GetUserRequest struct {
	UserID uuid.UUID
}

// GetUserResult represents the result of fetching one user
type GetUserResult struct {
	User *models.User
}

// GetUser retrieves an active user by id
func (s *UserService) GetUser(ctx context.Context, req GetUserRequest) (*GetUserResult, error) {
	if s.store == nil {
		return nil, errors.New("user store not set")
	}
	user, err := s.store.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return &GetUserResult{User: user}, nil
}

// ListUsersResult represents the admin user listing
type ListUsersResult struct {
	Users []*models.User
}

// ListUsers retrieves all active users
func (s *UserService) ListUsers(ctx context.Context) (*ListUsersResult, error) {
	if s.store == nil {
		return nil, errors.New("user store not set")
	}
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListUsersResult{Users: users}, nil
}

// UpdateProfileRequest represents a profile update
type UpdateProfileRequest struct {
	UserID uuid.UUID
	Update models.ProfileUpdate
}

// UpdateProfileResult represents the updated user
type UpdateProfileResult struct {
	User *models.User
}

// UpdateProfile applies a partial profile update
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*UpdateProfileResult, error) {
	if s.store == nil {
		return nil, errors.New("user store not set")
	}
	user, err := s.store.UpdateProfile(ctx, req.UserID, req.Update)
	if err != nil {
		return nil, err
	}
	return &UpdateProfileResult{User: user}, nil
}

// DeleteUserRequest represents a user deletion
type DeleteUserRequest struct {
	UserID uuid.UUID
	Hard   bool
}

// DeleteUserResult represents the result of deleting a user
type DeleteUserResult struct{}

// DeleteUser soft-deletes by default; Hard removes the row entirely
// (admin path).
func (s *UserService) DeleteUser(ctx context.Context, req DeleteUserRequest) (*DeleteUserResult, error) {
	if s.store == nil {
		return nil, errors.New("user store not set")
	}

	var err error
	if req.Hard {
		err = s.store.HardDelete(ctx, req.UserID)
	} else {
		err = s.store.SoftDelete(ctx, req.UserID)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Log(ctx, &models.ActivityLog{
		UserID:           req.UserID,
		ActionType:       "USER_DELETED",
		SourceFeature:    "account",
		TargetEntityType: "user",
		TargetEntityID:   req.UserID.String(),
		Status:           models.ActivitySuccess,
		Metadata:         models.ActivityMeta{"hard": req.Hard},
	})

	return &DeleteUserResult{}, nil
}
