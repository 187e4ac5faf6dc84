package services

import (
	"context"

	"github.com/sakahan-app/sakahan-backend/internal/core/domain"
	"github.com/sakahan-app/sakahan-backend/internal/dto"
)

// AuthSvcFacade authenticates application users and issues bearer tokens.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
