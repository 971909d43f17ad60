package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/utils"
)

// indexPrecision is the geohash precision positions are indexed at. Cells at
// this precision are ~19m wide, well under any dispatch radius, so prefix
// matching against a coarser cover never misses a candidate.
const indexPrecision = 8

// storedLocation is an immutable position snapshot. Updates swap the whole
// struct so readers never observe a latitude from one report paired with a
// longitude from another.
type storedLocation struct {
	coord models.Coordinate
	cell  string
}

type captainEntry struct {
	location atomic.Pointer[storedLocation]
}

// MemoryLocator is an in-process CaptainLocator. The mutex guards map shape
// only; position reads and writes go through per-captain atomic pointers, so
// a captain updating its position never blocks a radius query.
type MemoryLocator struct {
	mu       sync.RWMutex
	captains map[string]*captainEntry
}

// NewMemoryLocator creates an empty in-process locator
func NewMemoryLocator() *MemoryLocator {
	return &MemoryLocator{
		captains: make(map[string]*captainEntry),
	}
}

// UpdateLocation records the captain's position, replacing any previous one.
func (l *MemoryLocator) UpdateLocation(ctx context.Context, captainID string, coord models.Coordinate) error {
	loc := &storedLocation{
		coord: coord,
		cell:  utils.EncodeLocation(coord, indexPrecision),
	}

	l.mu.RLock()
	entry, ok := l.captains[captainID]
	l.mu.RUnlock()

	if !ok {
		l.mu.Lock()
		entry, ok = l.captains[captainID]
		if !ok {
			entry = &captainEntry{}
			l.captains[captainID] = entry
		}
		l.mu.Unlock()
	}

	entry.location.Store(loc)
	return nil
}

// Within returns the captains inside radiusKm of center, sorted by ID.
// Candidates are prefiltered by geohash cover before the exact spherical
// check, so most of the index is skipped on a string comparison.
func (l *MemoryLocator) Within(ctx context.Context, center models.Coordinate, radiusKm float64) ([]string, error) {
	cover := utils.CoverRadius(center, radiusKm)

	l.mu.RLock()
	ids := make([]string, 0)
	for id, entry := range l.captains {
		loc := entry.location.Load()
		if loc == nil {
			continue
		}
		if !coveredBy(loc.cell, cover) {
			continue
		}
		if utils.WithinRadius(center, loc.coord, radiusKm) {
			ids = append(ids, id)
		}
	}
	l.mu.RUnlock()

	sort.Strings(ids)
	return ids, nil
}

// Remove drops the captain from the index
func (l *MemoryLocator) Remove(ctx context.Context, captainID string) error {
	l.mu.Lock()
	delete(l.captains, captainID)
	l.mu.Unlock()
	return nil
}

func coveredBy(cell string, cover []string) bool {
	for _, prefix := range cover {
		if strings.HasPrefix(cell, prefix) {
			return true
		}
	}
	return false
}
