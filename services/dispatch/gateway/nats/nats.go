package gateway_nats

import (
	"context"
	"fmt"

	"github.com/gocab/gocab/internal/pkg/constants"
	"github.com/gocab/gocab/internal/pkg/logger"
	"github.com/gocab/gocab/internal/pkg/models"
	natspkg "github.com/gocab/gocab/internal/pkg/nats"
)

// NATSGateway implements the event publishing operations for the dispatch
// service
type NATSGateway struct {
	client *natspkg.Client
}

// NewNATSGateway creates a new NATS gateway
func NewNATSGateway(client *natspkg.Client) *NATSGateway {
	return &NATSGateway{
		client: client,
	}
}

// PublishLocationUpdate publishes a captain position report
func (g *NATSGateway) PublishLocationUpdate(ctx context.Context, update *models.LocationUpdate) error {
	if err := g.client.PublishJSON(constants.SubjectLocationUpdate, update); err != nil {
		logger.Error("Failed to publish location update",
			logger.String("captain_id", update.CaptainID),
			logger.Err(err))
		return fmt.Errorf("failed to publish location update: %w", err)
	}
	return nil
}

// PublishAvailability publishes a captain availability change. Available and
// unavailable transitions go to separate subjects so consumers can subscribe
// to only the side they care about.
func (g *NATSGateway) PublishAvailability(ctx context.Context, update *models.AvailabilityUpdate) error {
	subject := constants.SubjectCaptainUnavailable
	if update.Available {
		subject = constants.SubjectCaptainAvailable
	}

	if err := g.client.PublishJSON(subject, update); err != nil {
		logger.Error("Failed to publish availability update",
			logger.String("captain_id", update.CaptainID),
			logger.Err(err))
		return fmt.Errorf("failed to publish availability update: %w", err)
	}
	return nil
}
