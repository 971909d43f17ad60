package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/logger"
	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/pkg/password"
	"github.com/gocab/gocab/internal/pkg/token"
	"github.com/gocab/gocab/internal/utils"
)

const minPasswordLength = 8

// RegisterRider creates a rider account and opens a session for it.
func (uc *AccountUC) RegisterRider(ctx context.Context, req *models.RegisterRiderRequest) (*models.AuthResponse, *models.Rider, error) {
	email, err := validateRegistration(req.Email, req.FullName, req.Password)
	if err != nil {
		return nil, nil, err
	}

	digest, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	rider := &models.Rider{
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: digest,
	}
	if err := uc.repo.CreateRider(ctx, rider); err != nil {
		return nil, nil, err
	}

	logger.Info("rider registered",
		logger.String("rider_id", rider.ID.String()),
		logger.String("email", utils.MaskEmail(rider.Email)))

	resp, err := uc.openSession(rider)
	if err != nil {
		return nil, nil, err
	}
	return resp, rider, nil
}

// RegisterCaptain creates a captain account and opens a session for it.
// New captains start unavailable until they report in.
func (uc *AccountUC) RegisterCaptain(ctx context.Context, req *models.RegisterCaptainRequest) (*models.AuthResponse, *models.Captain, error) {
	email, err := validateRegistration(req.Email, req.FullName, req.Password)
	if err != nil {
		return nil, nil, err
	}
	if req.VehicleType == "" || req.VehiclePlate == "" {
		return nil, nil, fmt.Errorf("%w: vehicle type and plate are required", apperrors.ErrValidation)
	}

	digest, err := password.Hash(req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	captain := &models.Captain{
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: digest,
		VehicleType:  req.VehicleType,
		VehiclePlate: req.VehiclePlate,
		Available:    false,
	}
	if err := uc.repo.CreateCaptain(ctx, captain); err != nil {
		return nil, nil, err
	}

	logger.Info("captain registered",
		logger.String("captain_id", captain.ID.String()),
		logger.String("email", utils.MaskEmail(captain.Email)))

	resp, err := uc.openSession(captain)
	if err != nil {
		return nil, nil, err
	}
	return resp, captain, nil
}

// Login checks the presented password against the stored digest and opens a
// session. Unknown email and wrong password collapse into the same
// Unauthorized result so responses do not reveal which emails have accounts.
func (uc *AccountUC) Login(ctx context.Context, kind models.PrincipalKind, req *models.LoginRequest) (*models.AuthResponse, error) {
	email, err := utils.ValidateEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", apperrors.ErrValidation)
	}

	principal, digest, err := uc.lookupByEmail(ctx, kind, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrDependencyUnavailable) {
			return nil, err
		}
		logger.Warn("login failed: unknown account",
			logger.String("email", utils.MaskEmail(email)),
			logger.String("kind", string(kind)))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if err := password.Verify(req.Password, digest); err != nil {
		logger.Warn("login failed: password mismatch",
			logger.String("principal_id", principal.PrincipalID().String()))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return uc.openSession(principal)
}

// Logout revokes the presented credential for the remainder of its validity
// window. An already-expired or already-revoked credential is a no-op
// success: the session is closed either way.
func (uc *AccountUC) Logout(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return fmt.Errorf("%w: no credential presented", apperrors.ErrValidation)
	}

	claims, err := uc.verifier.Verify(ctx, tokenString)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrExpired), errors.Is(err, token.ErrRevoked):
			return nil
		case errors.Is(err, apperrors.ErrDependencyUnavailable):
			return err
		default:
			return fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := uc.revocations.Revoke(ctx, tokenString, ttl); err != nil {
		return err
	}

	logger.Info("session revoked", logger.String("principal_id", claims.Subject))
	return nil
}

// RiderProfile returns the rider record for an authenticated principal id.
func (uc *AccountUC) RiderProfile(ctx context.Context, id string) (*models.Rider, error) {
	return uc.repo.GetRiderByID(ctx, id)
}

// CaptainProfile returns the captain record for an authenticated principal id.
func (uc *AccountUC) CaptainProfile(ctx context.Context, id string) (*models.Captain, error) {
	return uc.repo.GetCaptainByID(ctx, id)
}

func (uc *AccountUC) lookupByEmail(ctx context.Context, kind models.PrincipalKind, email string) (models.Principal, string, error) {
	switch kind {
	case models.KindRider:
		rider, err := uc.repo.GetRiderByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		return rider, rider.PasswordHash, nil
	case models.KindCaptain:
		captain, err := uc.repo.GetCaptainByEmail(ctx, email)
		if err != nil {
			return nil, "", err
		}
		return captain, captain.PasswordHash, nil
	default:
		return nil, "", fmt.Errorf("%w: unknown principal kind %q", apperrors.ErrValidation, kind)
	}
}

func (uc *AccountUC) openSession(principal models.Principal) (*models.AuthResponse, error) {
	tokenString, expiresAt, err := uc.issuer.Issue(principal.CredentialSubject(), principal.Kind())
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	return &models.AuthResponse{
		Token:     tokenString,
		UserID:    principal.PrincipalID().String(),
		Kind:      principal.Kind(),
		ExpiresAt: expiresAt,
	}, nil
}

func validateRegistration(email, fullName, pass string) (string, error) {
	normalized, err := utils.ValidateEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if fullName == "" {
		return "", fmt.Errorf("%w: fullname is required", apperrors.ErrValidation)
	}
	if len(pass) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}
	return normalized, nil
}
