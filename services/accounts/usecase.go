package accounts

import (
	"context"

	"github.com/gocab/gocab/internal/pkg/models"
)

// AccountsUC is the account and session usecase interface
type AccountsUC interface {
	RegisterRider(ctx context.Context, req *models.RegisterRiderRequest) (*models.AuthResponse, *models.Rider, error)
	RegisterCaptain(ctx context.Context, req *models.RegisterCaptainRequest) (*models.AuthResponse, *models.Captain, error)

	Login(ctx context.Context, kind models.PrincipalKind, req *models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, tokenString string) error

	RiderProfile(ctx context.Context, id string) (*models.Rider, error)
	CaptainProfile(ctx context.Context, id string) (*models.Captain, error)
}
