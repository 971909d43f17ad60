package dispatch

import (
	"context"

	"github.com/gocab/gocab/internal/pkg/models"
)

// DispatchUC matches riders with nearby available captains
type DispatchUC interface {
	// UpdateLocation ingests a captain position report and republishes it
	// for interested consumers.
	UpdateLocation(ctx context.Context, update *models.LocationUpdate) error

	// NearbyCaptains finds available captains around a pickup point. A zero
	// radius falls back to the configured default.
	NearbyCaptains(ctx context.Context, query *models.NearbyQuery) (*models.NearbyResult, error)

	// SetAvailability toggles a captain in and out of the dispatch pool.
	// Going unavailable also drops the captain from the location index.
	SetAvailability(ctx context.Context, update *models.AvailabilityUpdate) error

	// ResolveAddress geocodes a free-text address via the maps provider.
	ResolveAddress(ctx context.Context, address string) (models.Coordinate, error)

	// RouteMetrics returns driving distance and duration between two points.
	RouteMetrics(ctx context.Context, origin, dest models.Coordinate) (*models.RouteMetrics, error)

	// Suggest returns address completions for a partial query.
	Suggest(ctx context.Context, partial string) ([]string, error)
}
