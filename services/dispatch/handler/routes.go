package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gocab/gocab/internal/pkg/middleware"
	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/pkg/token"
	"github.com/gocab/gocab/services/dispatch/handler/http"
)

// Handler coordinates the dispatch service's HTTP surface
type Handler struct {
	dispatchHandler *http.DispatchHandler
	verifier        *token.Verifier
	cfg             *models.Config
}

// NewHandler creates and initializes the dispatch handlers
func NewHandler(dispatchHandler *http.DispatchHandler, verifier *token.Verifier, cfg *models.Config) *Handler {
	return &Handler{
		dispatchHandler: dispatchHandler,
		verifier:        verifier,
		cfg:             cfg,
	}
}

// RegisterRoutes wires dispatch endpoints onto the Echo instance. Location
// and availability writes are captain-only; the nearby query is rider-only;
// maps lookups accept either kind.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	captainAuth := middleware.AuthMiddleware(h.verifier, models.KindCaptain)
	riderAuth := middleware.AuthMiddleware(h.verifier, models.KindRider)
	anyAuth := middleware.AuthMiddleware(h.verifier, models.KindRider, models.KindCaptain)

	captains := e.Group("/captains", captainAuth)
	captains.POST("/location", h.dispatchHandler.UpdateLocation)
	captains.PUT("/availability", h.dispatchHandler.SetAvailability)

	e.GET("/dispatch/nearby", h.dispatchHandler.NearbyCaptains, riderAuth)

	maps := e.Group("/maps", anyAuth)
	maps.GET("/geocode", h.dispatchHandler.Geocode)
	maps.GET("/route", h.dispatchHandler.Route)
	maps.GET("/suggest", h.dispatchHandler.Suggest)
}
