package repositories

import (
	"context"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for application users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
