package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/logger"
	"github.com/gocab/gocab/internal/pkg/middleware"
	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/utils"
	"github.com/gocab/gocab/services/accounts"
)

// AuthHandler handles HTTP requests for registration and session operations
type AuthHandler struct {
	accountUC accounts.AccountsUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accountUC accounts.AccountsUC) *AuthHandler {
	return &AuthHandler{accountUC: accountUC}
}

// RegisterRider handles rider registration requests
func (h *AuthHandler) RegisterRider(c echo.Context) error {
	var req models.RegisterRiderRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, _, err := h.accountUC.RegisterRider(c.Request().Context(), &req)
	if err != nil {
		return h.respondAuthError(c, "RegisterRider", err)
	}

	setSessionCookie(c, resp)
	return utils.SuccessResponse(c, http.StatusCreated, "Rider registered successfully", resp)
}

// RegisterCaptain handles captain registration requests
func (h *AuthHandler) RegisterCaptain(c echo.Context) error {
	var req models.RegisterCaptainRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, _, err := h.accountUC.RegisterCaptain(c.Request().Context(), &req)
	if err != nil {
		return h.respondAuthError(c, "RegisterCaptain", err)
	}

	setSessionCookie(c, resp)
	return utils.SuccessResponse(c, http.StatusCreated, "Captain registered successfully", resp)
}

// LoginRider handles rider login requests
func (h *AuthHandler) LoginRider(c echo.Context) error {
	return h.login(c, models.KindRider)
}

// LoginCaptain handles captain login requests
func (h *AuthHandler) LoginCaptain(c echo.Context) error {
	return h.login(c, models.KindCaptain)
}

func (h *AuthHandler) login(c echo.Context, kind models.PrincipalKind) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.accountUC.Login(c.Request().Context(), kind, &req)
	if err != nil {
		return h.respondAuthError(c, "Login", err)
	}

	setSessionCookie(c, resp)
	return utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

// Logout revokes the presented session credential, taken from the session
// cookie or the Authorization header, and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenString, err := middleware.ExtractToken(c)
	if err != nil {
		return utils.BadRequestResponse(c, "No session credential presented")
	}

	if err := h.accountUC.Logout(c.Request().Context(), tokenString); err != nil {
		return h.respondAuthError(c, "Logout", err)
	}

	clearSessionCookie(c)
	return utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// RiderProfile returns the authenticated rider's account record
func (h *AuthHandler) RiderProfile(c echo.Context) error {
	principalID, _ := c.Get(middleware.ContextPrincipalID).(string)

	rider, err := h.accountUC.RiderProfile(c.Request().Context(), principalID)
	if err != nil {
		return utils.NotFoundResponse(c, "Rider not found")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Rider profile retrieved", rider)
}

// CaptainProfile returns the authenticated captain's account record
func (h *AuthHandler) CaptainProfile(c echo.Context) error {
	principalID, _ := c.Get(middleware.ContextPrincipalID).(string)

	captain, err := h.accountUC.CaptainProfile(c.Request().Context(), principalID)
	if err != nil {
		return utils.NotFoundResponse(c, "Captain not found")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Captain profile retrieved", captain)
}

// respondAuthError maps usecase errors onto HTTP statuses. Unauthorized
// responses carry one fixed message regardless of cause.
func (h *AuthHandler) respondAuthError(c echo.Context, endpoint string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrUnauthorized):
		return utils.UnauthorizedResponse(c, "Invalid credentials")
	case errors.Is(err, apperrors.ErrConflict):
		return utils.ConflictResponse(c, "Email already registered")
	case errors.Is(err, apperrors.ErrDependencyUnavailable):
		logger.Error("Dependency unavailable",
			logger.ErrorField(err),
			logger.String("endpoint", endpoint),
		)
		return utils.ServiceUnavailableResponse(c, "Service temporarily unavailable")
	default:
		logger.Error("Unexpected account error",
			logger.ErrorField(err),
			logger.String("endpoint", endpoint),
		)
		return utils.InternalServerErrorResponse(c, "Internal server error")
	}
}

func setSessionCookie(c echo.Context, resp *models.AuthResponse) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  time.Unix(resp.ExpiresAt, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
