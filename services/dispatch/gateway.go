package dispatch

import (
	"context"
	"errors"

	"github.com/gocab/gocab/internal/pkg/models"
)

var (
	// ErrNoResult means the provider answered but found nothing for the query.
	ErrNoResult = errors.New("no geocoding result")

	// ErrProvider means the provider could not be reached or answered
	// with garbage.
	ErrProvider = errors.New("geocoding provider failure")
)

// DispatchGW publishes dispatch events to interested consumers
type DispatchGW interface {
	PublishLocationUpdate(ctx context.Context, update *models.LocationUpdate) error
	PublishAvailability(ctx context.Context, update *models.AvailabilityUpdate) error
}

// MapsGW resolves free-text addresses against an external geocoding provider.
// Provider failures are distinct from empty results: a well-formed query with
// no match returns ErrNoResult, a provider outage returns ErrProvider.
type MapsGW interface {
	ResolveAddress(ctx context.Context, address string) (models.Coordinate, error)
	RouteMetrics(ctx context.Context, origin, dest models.Coordinate) (*models.RouteMetrics, error)
	Suggest(ctx context.Context, partial string) ([]string, error)
}
