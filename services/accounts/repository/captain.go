package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/models"
)

// CreateCaptain inserts a new captain record. A duplicate email fails with
// apperrors.ErrConflict and leaves the existing record unchanged.
func (r *AccountRepo) CreateCaptain(ctx context.Context, captain *models.Captain) error {
	captain.ID = uuid.New()
	now := time.Now()
	captain.CreatedAt = now
	captain.UpdatedAt = now

	query := `
		INSERT INTO captains (
			id, email, fullname, password_hash,
			vehicle_type, vehicle_plate, available,
			created_at, updated_at
		) VALUES (
			:id, :email, :fullname, :password_hash,
			:vehicle_type, :vehicle_plate, :available,
			:created_at, :updated_at
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, captain); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
		}
		return fmt.Errorf("%w: failed to insert captain: %v", apperrors.ErrDependencyUnavailable, err)
	}

	return nil
}

// GetCaptainByEmail retrieves a captain by its natural key, digest included
func (r *AccountRepo) GetCaptainByEmail(ctx context.Context, email string) (*models.Captain, error) {
	return r.getCaptainByField(ctx, "email", email)
}

// GetCaptainByID retrieves a captain by ID
func (r *AccountRepo) GetCaptainByID(ctx context.Context, id string) (*models.Captain, error) {
	return r.getCaptainByField(ctx, "id", id)
}

// SetCaptainAvailability flips the captain's availability flag
func (r *AccountRepo) SetCaptainAvailability(ctx context.Context, id string, available bool) error {
	query := `
		UPDATE captains
		SET available = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: failed to update availability: %v", apperrors.ErrDependencyUnavailable, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("%w: captain not found", apperrors.ErrValidation)
	}

	return nil
}

func (r *AccountRepo) getCaptainByField(ctx context.Context, field, value string) (*models.Captain, error) {
	query := fmt.Sprintf(`
		SELECT id, email, fullname, password_hash,
			vehicle_type, vehicle_plate, available,
			created_at, updated_at
		FROM captains
		WHERE %s = $1
	`, field)

	var captain models.Captain
	if err := r.db.GetContext(ctx, &captain, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("captain not found")
		}
		return nil, fmt.Errorf("%w: failed to get captain: %v", apperrors.ErrDependencyUnavailable, err)
	}

	return &captain, nil
}
