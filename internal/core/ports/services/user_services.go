package services

import (
	"context"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/famvault/famvault-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// Register creates a new user with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
}

// UserAuthenticatorSvc validates credentials.
type UserAuthenticatorSvc interface {
	// Authenticate checks email/password and returns the user on success.
	// Returns apperrors.ErrUnauthorized on bad credentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}
