package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/constants"
)

// storeTimeout bounds every revocation store call so a slow redis surfaces
// as a retryable failure instead of stalling the request.
const storeTimeout = 2 * time.Second

// maxRevocationTTL caps entry retention at the credential validity window.
const maxRevocationTTL = 24 * time.Hour

// Revoke records the exact token string as invalid. The first write wins;
// revoking an already-revoked token is a no-op. The entry expires with the
// credential's own validity window, which is a space optimization only --
// the verifier's expiry check stands on its own.
func (r *AccountRepo) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 || ttl > maxRevocationTTL {
		ttl = maxRevocationTTL
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	key := fmt.Sprintf(constants.KeyRevokedToken, token)
	revokedAt := time.Now().UTC().Format(time.RFC3339)

	if _, err := r.redisClient.SetNX(ctx, key, revokedAt, ttl); err != nil {
		return fmt.Errorf("%w: failed to revoke token: %v", apperrors.ErrDependencyUnavailable, err)
	}

	return nil
}

// IsRevoked reports whether the exact token string has been revoked
func (r *AccountRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	key := fmt.Sprintf(constants.KeyRevokedToken, token)
	revoked, err := r.redisClient.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: failed to check revocation: %v", apperrors.ErrDependencyUnavailable, err)
	}

	return revoked, nil
}
