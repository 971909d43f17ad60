package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/logger"
	"github.com/gocab/gocab/internal/pkg/models"
)

// UpdateLocation ingests a captain position report. The locator write is the
// operation; the event publish is best-effort and never fails the report.
func (uc *DispatchUC) UpdateLocation(ctx context.Context, update *models.LocationUpdate) error {
	if update.CaptainID == "" {
		return fmt.Errorf("%w: captain id is required", apperrors.ErrValidation)
	}
	coord := models.Coordinate{Latitude: update.Latitude, Longitude: update.Longitude}
	if err := validateCoordinate(coord); err != nil {
		return err
	}
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now().UTC()
	}

	if err := uc.locator.UpdateLocation(ctx, update.CaptainID, coord); err != nil {
		return err
	}

	if err := uc.gw.PublishLocationUpdate(ctx, update); err != nil {
		logger.Warn("failed to publish location update",
			logger.ErrorField(err),
			logger.String("captain_id", update.CaptainID))
	}

	return nil
}

// NearbyCaptains finds captains around a pickup point. A zero radius falls
// back to the configured default; anything beyond the configured maximum is
// rejected rather than clamped.
func (uc *DispatchUC) NearbyCaptains(ctx context.Context, query *models.NearbyQuery) (*models.NearbyResult, error) {
	center := models.Coordinate{Latitude: query.Latitude, Longitude: query.Longitude}
	if err := validateCoordinate(center); err != nil {
		return nil, err
	}

	radius := query.RadiusKm
	if radius == 0 {
		radius = uc.cfg.Dispatch.SearchRadiusKm
	}
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive", apperrors.ErrValidation)
	}
	if max := uc.cfg.Dispatch.MaxRadiusKm; max > 0 && radius > max {
		return nil, fmt.Errorf("%w: radius %.2f km exceeds maximum %.2f km", apperrors.ErrValidation, radius, max)
	}

	ids, err := uc.locator.Within(ctx, center, radius)
	if err != nil {
		return nil, err
	}

	return &models.NearbyResult{CaptainIDs: ids, RadiusKm: radius}, nil
}

// SetAvailability toggles a captain in and out of the dispatch pool. Going
// unavailable drops the captain from the location index so radius queries
// stop returning it immediately.
func (uc *DispatchUC) SetAvailability(ctx context.Context, update *models.AvailabilityUpdate) error {
	if update.CaptainID == "" {
		return fmt.Errorf("%w: captain id is required", apperrors.ErrValidation)
	}

	if err := uc.status.SetCaptainAvailability(ctx, update.CaptainID, update.Available); err != nil {
		return err
	}

	if !update.Available {
		if err := uc.locator.Remove(ctx, update.CaptainID); err != nil {
			return err
		}
	}

	if err := uc.gw.PublishAvailability(ctx, update); err != nil {
		logger.Warn("failed to publish availability update",
			logger.ErrorField(err),
			logger.String("captain_id", update.CaptainID))
	}

	return nil
}

// ResolveAddress geocodes a free-text address via the maps provider
func (uc *DispatchUC) ResolveAddress(ctx context.Context, address string) (models.Coordinate, error) {
	if address == "" {
		return models.Coordinate{}, fmt.Errorf("%w: address is required", apperrors.ErrValidation)
	}
	return uc.maps.ResolveAddress(ctx, address)
}

// RouteMetrics returns driving distance and duration between two points
func (uc *DispatchUC) RouteMetrics(ctx context.Context, origin, dest models.Coordinate) (*models.RouteMetrics, error) {
	if err := validateCoordinate(origin); err != nil {
		return nil, err
	}
	if err := validateCoordinate(dest); err != nil {
		return nil, err
	}
	return uc.maps.RouteMetrics(ctx, origin, dest)
}

// Suggest returns address completions for a partial query
func (uc *DispatchUC) Suggest(ctx context.Context, partial string) ([]string, error) {
	if partial == "" {
		return nil, fmt.Errorf("%w: query is required", apperrors.ErrValidation)
	}
	return uc.maps.Suggest(ctx, partial)
}

func validateCoordinate(coord models.Coordinate) error {
	if coord.Latitude < -90 || coord.Latitude > 90 {
		return fmt.Errorf("%w: latitude %.4f out of range", apperrors.ErrValidation, coord.Latitude)
	}
	if coord.Longitude < -180 || coord.Longitude > 180 {
		return fmt.Errorf("%w: longitude %.4f out of range", apperrors.ErrValidation, coord.Longitude)
	}
	return nil
}
