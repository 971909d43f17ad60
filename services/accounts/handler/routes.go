package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gocab/gocab/internal/pkg/middleware"
	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/pkg/token"
	"github.com/gocab/gocab/services/accounts/handler/http"
)

// Handler coordinates the account service's HTTP surface
type Handler struct {
	authHandler *http.AuthHandler
	verifier    *token.Verifier
	cfg         *models.Config
}

// NewHandler creates and initializes the account handlers
func NewHandler(authHandler *http.AuthHandler, verifier *token.Verifier, cfg *models.Config) *Handler {
	return &Handler{
		authHandler: authHandler,
		verifier:    verifier,
		cfg:         cfg,
	}
}

// RegisterRoutes wires account endpoints onto the Echo instance. Registration,
// login, and logout are open; profile routes require a verified session of
// the matching kind.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	riders := e.Group("/riders")
	riders.POST("/register", h.authHandler.RegisterRider)
	riders.POST("/login", h.authHandler.LoginRider)
	riders.GET("/me", h.authHandler.RiderProfile,
		middleware.AuthMiddleware(h.verifier, models.KindRider))

	captains := e.Group("/captains")
	captains.POST("/register", h.authHandler.RegisterCaptain)
	captains.POST("/login", h.authHandler.LoginCaptain)
	captains.GET("/me", h.authHandler.CaptainProfile,
		middleware.AuthMiddleware(h.verifier, models.KindCaptain))

	e.POST("/auth/logout", h.authHandler.Logout)
}
