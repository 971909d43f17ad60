package usecase

import (
	"context"

	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/services/dispatch"
)

// CaptainStatusStore persists the captain availability flag. Satisfied by the
// accounts repository; dispatch only needs this one write.
type CaptainStatusStore interface {
	SetCaptainAvailability(ctx context.Context, id string, available bool) error
}

// DispatchUC implements the dispatch usecase
type DispatchUC struct {
	cfg     *models.Config
	locator dispatch.CaptainLocator
	gw      dispatch.DispatchGW
	maps    dispatch.MapsGW
	status  CaptainStatusStore
}

// NewDispatchUC creates a new dispatch usecase
func NewDispatchUC(
	cfg *models.Config,
	locator dispatch.CaptainLocator,
	gw dispatch.DispatchGW,
	maps dispatch.MapsGW,
	status CaptainStatusStore,
) *DispatchUC {
	return &DispatchUC{
		cfg:     cfg,
		locator: locator,
		gw:      gw,
		maps:    maps,
		status:  status,
	}
}
