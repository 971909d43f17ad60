package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/constants"
	"github.com/gocab/gocab/internal/pkg/database"
	"github.com/gocab/gocab/internal/pkg/models"
)

const defaultLocatorTimeout = 2 * time.Second

// RedisLocator is a CaptainLocator backed by a redis geo set, for deployments
// where several dispatch instances share one index.
type RedisLocator struct {
	redisClient *database.RedisClient
	timeout     time.Duration
}

// NewRedisLocator creates a locator over the shared redis geo set. timeoutMs
// bounds every store call; zero falls back to 2 seconds.
func NewRedisLocator(redisClient *database.RedisClient, timeoutMs int) *RedisLocator {
	timeout := time.Duration(timeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultLocatorTimeout
	}
	return &RedisLocator{
		redisClient: redisClient,
		timeout:     timeout,
	}
}

// UpdateLocation records the captain's position; GEOADD replaces the member
// score so the previous position is dropped atomically.
func (l *RedisLocator) UpdateLocation(ctx context.Context, captainID string, coord models.Coordinate) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	err := l.redisClient.GeoAdd(ctx, constants.KeyCaptainGeo, coord.Longitude, coord.Latitude, captainID)
	if err != nil {
		return fmt.Errorf("%w: failed to store captain location: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return nil
}

// Within returns the captains inside radiusKm of center, sorted by ID.
// GEORADIUS measures on redis's Earth radius of 6372.797 km rather than the
// 6371 km used everywhere else, so membership right at the boundary can
// differ from the in-process locator by ~0.03%.
func (l *RedisLocator) Within(ctx context.Context, center models.Coordinate, radiusKm float64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	locations, err := l.redisClient.GeoRadius(ctx, constants.KeyCaptainGeo, center.Longitude, center.Latitude, radiusKm, "km")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query captain locations: %v", apperrors.ErrDependencyUnavailable, err)
	}

	ids := make([]string, 0, len(locations))
	for _, loc := range locations {
		ids = append(ids, loc.Name)
	}
	sort.Strings(ids)
	return ids, nil
}

// Remove drops the captain from the geo set
func (l *RedisLocator) Remove(ctx context.Context, captainID string) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := l.redisClient.ZRem(ctx, constants.KeyCaptainGeo, captainID); err != nil {
		return fmt.Errorf("%w: failed to remove captain location: %v", apperrors.ErrDependencyUnavailable, err)
	}
	return nil
}
