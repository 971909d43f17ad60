package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/models"
)

// uniqueViolation is the postgres error code for duplicate keys
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreateRider inserts a new rider record. A duplicate email fails with
// apperrors.ErrConflict and leaves the existing record unchanged.
func (r *AccountRepo) CreateRider(ctx context.Context, rider *models.Rider) error {
	rider.ID = uuid.New()
	now := time.Now()
	rider.CreatedAt = now
	rider.UpdatedAt = now

	query := `
		INSERT INTO riders (id, email, fullname, password_hash, created_at, updated_at)
		VALUES (:id, :email, :fullname, :password_hash, :created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, rider); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
		}
		return fmt.Errorf("%w: failed to insert rider: %v", apperrors.ErrDependencyUnavailable, err)
	}

	return nil
}

// GetRiderByEmail retrieves a rider by its natural key, digest included
func (r *AccountRepo) GetRiderByEmail(ctx context.Context, email string) (*models.Rider, error) {
	query := `
		SELECT id, email, fullname, password_hash, created_at, updated_at
		FROM riders
		WHERE email = $1
	`

	var rider models.Rider
	if err := r.db.GetContext(ctx, &rider, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rider not found")
		}
		return nil, fmt.Errorf("%w: failed to get rider: %v", apperrors.ErrDependencyUnavailable, err)
	}

	return &rider, nil
}

// GetRiderByID retrieves a rider by ID
func (r *AccountRepo) GetRiderByID(ctx context.Context, id string) (*models.Rider, error) {
	query := `
		SELECT id, email, fullname, password_hash, created_at, updated_at
		FROM riders
		WHERE id = $1
	`

	var rider models.Rider
	if err := r.db.GetContext(ctx, &rider, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("rider not found")
		}
		return nil, fmt.Errorf("%w: failed to get rider: %v", apperrors.ErrDependencyUnavailable, err)
	}

	return &rider, nil
}
