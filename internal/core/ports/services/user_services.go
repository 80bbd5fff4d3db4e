package services

import (
	"context"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
	"github.com/dayatwork/sismo-v2-sub002/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a specific user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, params dto.ListUsersParams) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser persists a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error
}

// UserAuthenticatorSvc defines authentication operations against stored credentials
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies username/password and returns the user.
	// Returns apperrors.ErrUnauthorized for unknown users or bad passwords.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)

	// FindOrCreateOAuthUser resolves a user from a verified OAuth profile,
	// creating the account on first login.
	FindOrCreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// StoreRefreshTokenHash persists the hash and expiry of a freshly issued
	// refresh token.
	StoreRefreshTokenHash(ctx context.Context, userID string, tokenHash string, expiryUnix int64) error

	// ClearRefreshToken drops the stored refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
