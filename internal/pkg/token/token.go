// Package token issues and verifies the signed session credentials shared by
// riders and captains. Verification is pure apart from the revocation lookup,
// which is injected so the verifier can be tested without a store.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/models"
)

var (
	// ErrMalformed means the token is not structurally decodable.
	ErrMalformed = errors.New("malformed token")

	// ErrInvalidSignature means the signature does not verify against the
	// issuer secret.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrExpired means the token's validity window has passed.
	ErrExpired = errors.New("expired token")

	// ErrRevoked means the exact token string was revoked before its
	// natural expiry.
	ErrRevoked = errors.New("revoked token")
)

// Claims binds a principal to a validity window.
type Claims struct {
	Kind models.PrincipalKind `json:"kind"`
	jwt.RegisteredClaims
}

// RevocationChecker answers whether an exact token string has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Issuer mints signed, time-bounded credentials. The signing secret is
// loaded once at startup and never rotated at runtime.
type Issuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewIssuer creates an issuer from JWT configuration. Expiration is in
// minutes; zero falls back to 24 hours.
func NewIssuer(cfg models.JWTConfig) *Issuer {
	ttl := time.Duration(cfg.Expiration) * time.Minute
	if cfg.Expiration == 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
	}
}

// Issue produces a signed credential asserting the principal. Issuance time
// is embedded, so calls at different instants produce different tokens.
func (i *Issuer) Issue(principalID string, kind models.PrincipalKind) (string, int64, error) {
	now := time.Now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt.Unix(), nil
}

// Verifier validates presented credentials against the issuer secret and the
// revocation store.
type Verifier struct {
	secret      []byte
	revocations RevocationChecker
}

// NewVerifier creates a verifier. revocations may be nil for callers that
// only need the stateless checks.
func NewVerifier(cfg models.JWTConfig, revocations RevocationChecker) *Verifier {
	return &Verifier{
		secret:      []byte(cfg.Secret),
		revocations: revocations,
	}
}

// Verify resolves a token to its claims. Checks run cheapest first: structure,
// signature, expiry, then the revocation store, so garbage input never loads
// the store. A near-expiry credential is not renewed here.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidSignature
	}

	if v.revocations != nil {
		revoked, err := v.revocations.IsRevoked(ctx, tokenString)
		if err != nil {
			return nil, fmt.Errorf("%w: revocation lookup: %v", apperrors.ErrDependencyUnavailable, err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}

	return claims, nil
}

// classifyParseError maps jwt validation failures onto the credential error
// taxonomy, keeping the structural/signature/expiry precedence.
func classifyParseError(err error) error {
	var vErr *jwt.ValidationError
	if !errors.As(err, &vErr) {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	switch {
	case vErr.Errors&jwt.ValidationErrorMalformed != 0:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case vErr.Errors&jwt.ValidationErrorExpired != 0:
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
