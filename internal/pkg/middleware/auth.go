package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/logger"
	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/pkg/token"
	"github.com/gocab/gocab/internal/utils"
)

// TokenCookieName is the cookie carrying the session credential.
const TokenCookieName = "token"

// Context keys set by AuthMiddleware for downstream handlers.
const (
	ContextPrincipalID   = "principal_id"
	ContextPrincipalKind = "principal_kind"
	ContextToken         = "session_token"
)

// ExtractToken pulls the bearer credential from the request: the token
// cookie first, then the Authorization header. Both carry the same token;
// the header only needs to be well-formed when the cookie is absent.
func ExtractToken(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("no credential supplied")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization format")
	}
	return parts[1], nil
}

// AuthMiddleware gates authenticated routes. It runs the full credential
// check (structure, signature, expiry, revocation) and stores the resolved
// principal in the request context. The specific failure kind is logged;
// clients always receive one uniform rejection.
func AuthMiddleware(verifier *token.Verifier, kinds ...models.PrincipalKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := ExtractToken(c)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid or missing credential")
			}

			claims, err := verifier.Verify(c.Request().Context(), tokenString)
			if err != nil {
				if errors.Is(err, apperrors.ErrDependencyUnavailable) {
					logger.Error("credential check unavailable", logger.Err(err))
					return utils.ServiceUnavailableResponse(c, "Please retry")
				}
				logger.Warn("rejected credential",
					logger.Err(err),
					logger.String("path", c.Request().URL.Path))
				return utils.UnauthorizedResponse(c, "Invalid or missing credential")
			}

			if len(kinds) > 0 && !kindAllowed(claims.Kind, kinds) {
				return utils.ForbiddenResponse(c, "Wrong account type for this resource")
			}

			c.Set(ContextPrincipalID, claims.Subject)
			c.Set(ContextPrincipalKind, claims.Kind)
			c.Set(ContextToken, tokenString)

			return next(c)
		}
	}
}

func kindAllowed(kind models.PrincipalKind, allowed []models.PrincipalKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}
