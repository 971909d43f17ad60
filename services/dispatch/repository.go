package dispatch

import (
	"context"

	"github.com/gocab/gocab/internal/pkg/models"
)

// CaptainLocator indexes captain positions for radius queries. Implementations
// keep only the latest coordinate per captain; an update replaces the previous
// position atomically, so a concurrent query sees the old position or the new
// one, never a torn pair.
type CaptainLocator interface {
	// UpdateLocation records the captain's current position, replacing any
	// previous one.
	UpdateLocation(ctx context.Context, captainID string, coord models.Coordinate) error

	// Within returns the IDs of captains whose position lies within radiusKm
	// of center, sorted ascending by captain ID.
	Within(ctx context.Context, center models.Coordinate, radiusKm float64) ([]string, error)

	// Remove drops the captain from the index. Removing an unknown captain
	// is a no-op.
	Remove(ctx context.Context, captainID string) error
}
