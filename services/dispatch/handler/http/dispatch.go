package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/logger"
	"github.com/gocab/gocab/internal/pkg/middleware"
	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/utils"
	"github.com/gocab/gocab/services/dispatch"
)

// DispatchHandler handles HTTP requests for location reporting and nearby
// captain queries
type DispatchHandler struct {
	dispatchUC dispatch.DispatchUC
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(dispatchUC dispatch.DispatchUC) *DispatchHandler {
	return &DispatchHandler{dispatchUC: dispatchUC}
}

// UpdateLocation handles a captain position report. The captain ID comes from
// the verified session, never from the payload.
func (h *DispatchHandler) UpdateLocation(c echo.Context) error {
	var update models.LocationUpdate
	if err := c.Bind(&update); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	update.CaptainID, _ = c.Get(middleware.ContextPrincipalID).(string)

	if err := h.dispatchUC.UpdateLocation(c.Request().Context(), &update); err != nil {
		return h.respondDispatchError(c, "UpdateLocation", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location updated", nil)
}

// SetAvailability handles a captain toggling in or out of the dispatch pool
func (h *DispatchHandler) SetAvailability(c echo.Context) error {
	var update models.AvailabilityUpdate
	if err := c.Bind(&update); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	update.CaptainID, _ = c.Get(middleware.ContextPrincipalID).(string)

	if err := h.dispatchUC.SetAvailability(c.Request().Context(), &update); err != nil {
		return h.respondDispatchError(c, "SetAvailability", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Availability updated", nil)
}

// NearbyCaptains handles a rider's radius search around a pickup point
func (h *DispatchHandler) NearbyCaptains(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("latitude"), 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid latitude")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("longitude"), 64)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid longitude")
	}

	query := &models.NearbyQuery{Latitude: lat, Longitude: lng}
	if raw := c.QueryParam("radius_km"); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return utils.BadRequestResponse(c, "Invalid radius")
		}
		query.RadiusKm = radius
	}

	result, err := h.dispatchUC.NearbyCaptains(c.Request().Context(), query)
	if err != nil {
		return h.respondDispatchError(c, "NearbyCaptains", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Nearby captains retrieved", result)
}

// Geocode resolves a free-text address to a coordinate
func (h *DispatchHandler) Geocode(c echo.Context) error {
	coord, err := h.dispatchUC.ResolveAddress(c.Request().Context(), c.QueryParam("address"))
	if err != nil {
		return h.respondDispatchError(c, "Geocode", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Address resolved", coord)
}

// Route returns driving distance and duration between two coordinates
func (h *DispatchHandler) Route(c echo.Context) error {
	origin, err := parseCoordinate(c, "origin_latitude", "origin_longitude")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid origin")
	}
	dest, err := parseCoordinate(c, "dest_latitude", "dest_longitude")
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid destination")
	}

	metrics, err := h.dispatchUC.RouteMetrics(c.Request().Context(), origin, dest)
	if err != nil {
		return h.respondDispatchError(c, "Route", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Route computed", metrics)
}

// Suggest returns address completions for a partial query
func (h *DispatchHandler) Suggest(c echo.Context) error {
	suggestions, err := h.dispatchUC.Suggest(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return h.respondDispatchError(c, "Suggest", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Suggestions retrieved", suggestions)
}

func (h *DispatchHandler) respondDispatchError(c echo.Context, endpoint string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, dispatch.ErrNoResult):
		return utils.NotFoundResponse(c, "No result")
	case errors.Is(err, dispatch.ErrProvider):
		logger.Error("Maps provider failure",
			logger.ErrorField(err),
			logger.String("endpoint", endpoint),
		)
		return utils.ErrorResponseHandler(c, http.StatusBadGateway, "Maps provider unavailable")
	case errors.Is(err, apperrors.ErrDependencyUnavailable):
		logger.Error("Dependency unavailable",
			logger.ErrorField(err),
			logger.String("endpoint", endpoint),
		)
		return utils.ServiceUnavailableResponse(c, "Service temporarily unavailable")
	default:
		logger.Error("Unexpected dispatch error",
			logger.ErrorField(err),
			logger.String("endpoint", endpoint),
		)
		return utils.InternalServerErrorResponse(c, "Internal server error")
	}
}

func parseCoordinate(c echo.Context, latParam, lngParam string) (models.Coordinate, error) {
	lat, err := strconv.ParseFloat(c.QueryParam(latParam), 64)
	if err != nil {
		return models.Coordinate{}, err
	}
	lng, err := strconv.ParseFloat(c.QueryParam(lngParam), 64)
	if err != nil {
		return models.Coordinate{}, err
	}
	return models.Coordinate{Latitude: lat, Longitude: lng}, nil
}
