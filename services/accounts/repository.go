package accounts

import (
	"context"
	"time"

	"github.com/gocab/gocab/internal/pkg/models"
)

// AccountRepo is the persistence contract for rider and captain records.
// Duplicate natural keys (email) surface as apperrors.ErrConflict with the
// original record untouched.
type AccountRepo interface {
	CreateRider(ctx context.Context, rider *models.Rider) error
	GetRiderByEmail(ctx context.Context, email string) (*models.Rider, error)
	GetRiderByID(ctx context.Context, id string) (*models.Rider, error)

	CreateCaptain(ctx context.Context, captain *models.Captain) error
	GetCaptainByEmail(ctx context.Context, email string) (*models.Captain, error)
	GetCaptainByID(ctx context.Context, id string) (*models.Captain, error)
	SetCaptainAvailability(ctx context.Context, id string, available bool) error
}

// RevocationStore records credentials that must be treated as invalid for
// the remainder of their validity window. Entries are written once and may
// be purged after their credential's natural expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
