package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/pkg/token"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocations) IsRevoked(_ context.Context, t string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[t], nil
}

func authTestSetup(t *testing.T, revocations token.RevocationChecker) (*token.Issuer, echo.MiddlewareFunc) {
	t.Helper()
	cfg := models.JWTConfig{Secret: "middleware-test-secret", Expiration: 60, Issuer: "gocab-test"}
	issuer := token.NewIssuer(cfg)
	mw := AuthMiddleware(token.NewVerifier(cfg, revocations))
	return issuer, mw
}

func performRequest(mw echo.MiddlewareFunc, setup func(*http.Request)) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	_ = handler(c)
	return rec, c
}

func TestAuthMiddleware_HeaderToken(t *testing.T) {
	issuer, mw := authTestSetup(t, &stubRevocations{})
	principalID := uuid.New().String()
	tokenString, _, err := issuer.Issue(principalID, models.KindRider)
	require.NoError(t, err)

	rec, c := performRequest(mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tokenString)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, principalID, c.Get(ContextPrincipalID))
	assert.Equal(t, models.KindRider, c.Get(ContextPrincipalKind))
	assert.Equal(t, tokenString, c.Get(ContextToken))
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	issuer, mw := authTestSetup(t, &stubRevocations{})
	tokenString, _, err := issuer.Issue(uuid.New().String(), models.KindCaptain)
	require.NoError(t, err)

	rec, _ := performRequest(mw, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tokenString})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_CookieTakesPrecedence(t *testing.T) {
	issuer, mw := authTestSetup(t, &stubRevocations{})
	tokenString, _, err := issuer.Issue(uuid.New().String(), models.KindRider)
	require.NoError(t, err)

	// A malformed header must not matter when a valid cookie is present.
	rec, _ := performRequest(mw, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tokenString})
		req.Header.Set("Authorization", "garbage")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	_, mw := authTestSetup(t, &stubRevocations{})

	expiredCfg := models.JWTConfig{Secret: "middleware-test-secret", Expiration: -1, Issuer: "gocab-test"}
	expiredToken, _, err := token.NewIssuer(expiredCfg).Issue(uuid.New().String(), models.KindRider)
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup func(*http.Request)
	}{
		{name: "No credential at all", setup: nil},
		{name: "Malformed header", setup: func(req *http.Request) {
			req.Header.Set("Authorization", "Token abc")
		}},
		{name: "Garbage token", setup: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer garbage")
		}},
		{name: "Expired token", setup: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+expiredToken)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := performRequest(mw, tt.setup)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Uniform body regardless of failure kind.
			assert.Contains(t, rec.Body.String(), "Invalid or missing credential")
		})
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	revocations := &stubRevocations{revoked: map[string]bool{}}
	issuer, mw := authTestSetup(t, revocations)

	tokenString, _, err := issuer.Issue(uuid.New().String(), models.KindRider)
	require.NoError(t, err)
	revocations.revoked[tokenString] = true

	rec, _ := performRequest(mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tokenString)
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid or missing credential")
}

func TestAuthMiddleware_StoreUnavailable(t *testing.T) {
	issuer, mw := authTestSetup(t, &stubRevocations{err: errors.New("redis down")})

	tokenString, _, err := issuer.Issue(uuid.New().String(), models.KindRider)
	require.NoError(t, err)

	rec, _ := performRequest(mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tokenString)
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthMiddleware_KindRestriction(t *testing.T) {
	cfg := models.JWTConfig{Secret: "middleware-test-secret", Expiration: 60, Issuer: "gocab-test"}
	issuer := token.NewIssuer(cfg)
	mw := AuthMiddleware(token.NewVerifier(cfg, &stubRevocations{}), models.KindCaptain)

	riderToken, _, err := issuer.Issue(uuid.New().String(), models.KindRider)
	require.NoError(t, err)

	rec, _ := performRequest(mw, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+riderToken)
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
