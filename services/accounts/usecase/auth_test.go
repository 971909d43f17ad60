package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocab/gocab/internal/pkg/apperrors"
	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/pkg/password"
	"github.com/gocab/gocab/internal/pkg/token"
)

// fakeAccountRepo is an in-memory AccountRepo for usecase tests.
type fakeAccountRepo struct {
	riders   map[string]*models.Rider
	captains map[string]*models.Captain
	failWith error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		riders:   make(map[string]*models.Rider),
		captains: make(map[string]*models.Captain),
	}
}

func (f *fakeAccountRepo) CreateRider(ctx context.Context, rider *models.Rider) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.riders[rider.Email]; ok {
		return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	}
	rider.ID = uuid.New()
	f.riders[rider.Email] = rider
	return nil
}

func (f *fakeAccountRepo) GetRiderByEmail(ctx context.Context, email string) (*models.Rider, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	rider, ok := f.riders[email]
	if !ok {
		return nil, fmt.Errorf("rider not found")
	}
	return rider, nil
}

func (f *fakeAccountRepo) GetRiderByID(ctx context.Context, id string) (*models.Rider, error) {
	for _, rider := range f.riders {
		if rider.ID.String() == id {
			return rider, nil
		}
	}
	return nil, fmt.Errorf("rider not found")
}

func (f *fakeAccountRepo) CreateCaptain(ctx context.Context, captain *models.Captain) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.captains[captain.Email]; ok {
		return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	}
	captain.ID = uuid.New()
	f.captains[captain.Email] = captain
	return nil
}

func (f *fakeAccountRepo) GetCaptainByEmail(ctx context.Context, email string) (*models.Captain, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	captain, ok := f.captains[email]
	if !ok {
		return nil, fmt.Errorf("captain not found")
	}
	return captain, nil
}

func (f *fakeAccountRepo) GetCaptainByID(ctx context.Context, id string) (*models.Captain, error) {
	for _, captain := range f.captains {
		if captain.ID.String() == id {
			return captain, nil
		}
	}
	return nil, fmt.Errorf("captain not found")
}

func (f *fakeAccountRepo) SetCaptainAvailability(ctx context.Context, id string, available bool) error {
	for _, captain := range f.captains {
		if captain.ID.String() == id {
			captain.Available = available
			return nil
		}
	}
	return fmt.Errorf("captain not found")
}

// fakeRevocationStore records revocations in memory.
type fakeRevocationStore struct {
	revoked  map[string]time.Duration
	failWith error
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]time.Duration)}
}

func (f *fakeRevocationStore) Revoke(ctx context.Context, tok string, ttl time.Duration) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.revoked[tok]; !ok {
		f.revoked[tok] = ttl
	}
	return nil
}

func (f *fakeRevocationStore) IsRevoked(ctx context.Context, tok string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ok := f.revoked[tok]
	return ok, nil
}

func setupAccountUCTest(t *testing.T) (*AccountUC, *fakeAccountRepo, *fakeRevocationStore) {
	t.Helper()

	jwtCfg := models.JWTConfig{
		Secret:     "test-secret-key",
		Issuer:     "gocab-test",
		Expiration: 60,
	}
	repo := newFakeAccountRepo()
	revocations := newFakeRevocationStore()
	uc := NewAccountUC(
		&models.Config{JWT: jwtCfg},
		repo,
		revocations,
		token.NewIssuer(jwtCfg),
		token.NewVerifier(jwtCfg, revocations),
	)
	return uc, repo, revocations
}

func registerTestRider(t *testing.T, uc *AccountUC) *models.AuthResponse {
	t.Helper()
	resp, _, err := uc.RegisterRider(context.Background(), &models.RegisterRiderRequest{
		Email:    "ada@example.com",
		FullName: "Ada Rider",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterRider(t *testing.T) {
	uc, repo, _ := setupAccountUCTest(t)

	resp, rider, err := uc.RegisterRider(context.Background(), &models.RegisterRiderRequest{
		Email:    "Ada@Example.com",
		FullName: "Ada Rider",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.KindRider, resp.Kind)
	assert.Equal(t, rider.ID.String(), resp.UserID)

	// Email is normalized before storage.
	stored, ok := repo.riders["ada@example.com"]
	require.True(t, ok)

	// The digest verifies against the original password and is not the
	// password itself.
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NoError(t, password.Verify("correct horse", stored.PasswordHash))
}

func TestRegisterRider_Validation(t *testing.T) {
	uc, _, _ := setupAccountUCTest(t)

	testCases := []struct {
		name string
		req  *models.RegisterRiderRequest
	}{
		{name: "bad email", req: &models.RegisterRiderRequest{Email: "not-an-email", FullName: "A", Password: "longenough"}},
		{name: "empty fullname", req: &models.RegisterRiderRequest{Email: "a@b.com", FullName: "", Password: "longenough"}},
		{name: "short password", req: &models.RegisterRiderRequest{Email: "a@b.com", FullName: "A", Password: "short"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := uc.RegisterRider(context.Background(), tc.req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestRegisterRider_DuplicateEmail(t *testing.T) {
	uc, _, _ := setupAccountUCTest(t)
	registerTestRider(t, uc)

	_, _, err := uc.RegisterRider(context.Background(), &models.RegisterRiderRequest{
		Email:    "ada@example.com",
		FullName: "Other Ada",
		Password: "another pass",
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRegisterCaptain(t *testing.T) {
	uc, repo, _ := setupAccountUCTest(t)

	resp, captain, err := uc.RegisterCaptain(context.Background(), &models.RegisterCaptainRequest{
		Email:        "cap@example.com",
		FullName:     "Cap Tain",
		Password:     "correct horse",
		VehicleType:  "sedan",
		VehiclePlate: "B 1234 XY",
	})

	require.NoError(t, err)
	assert.Equal(t, models.KindCaptain, resp.Kind)
	assert.False(t, captain.Available, "new captains start unavailable")
	assert.Contains(t, repo.captains, "cap@example.com")
}

func TestRegisterCaptain_MissingVehicle(t *testing.T) {
	uc, _, _ := setupAccountUCTest(t)

	_, _, err := uc.RegisterCaptain(context.Background(), &models.RegisterCaptainRequest{
		Email:    "cap@example.com",
		FullName: "Cap Tain",
		Password: "correct horse",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLogin(t *testing.T) {
	uc, _, _ := setupAccountUCTest(t)
	registered := registerTestRider(t, uc)

	resp, err := uc.Login(context.Background(), models.KindRider, &models.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, registered.UserID, resp.UserID)
	assert.NotEmpty(t, resp.Token)

	claims, err := uc.verifier.Verify(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, claims.Subject)
	assert.Equal(t, models.KindRider, claims.Kind)
}

func TestLogin_UniformRejection(t *testing.T) {
	// Unknown email and wrong password must be indistinguishable to the
	// caller, so neither reveals whether an account exists.
	uc, _, _ := setupAccountUCTest(t)
	registerTestRider(t, uc)

	unknownErr := func() error {
		_, err := uc.Login(context.Background(), models.KindRider, &models.LoginRequest{
			Email: "nobody@example.com", Password: "whatever pass",
		})
		return err
	}()
	wrongPassErr := func() error {
		_, err := uc.Login(context.Background(), models.KindRider, &models.LoginRequest{
			Email: "ada@example.com", Password: "wrong horse",
		})
		return err
	}()

	assert.ErrorIs(t, unknownErr, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, wrongPassErr, apperrors.ErrUnauthorized)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestLogin_RepoUnavailable(t *testing.T) {
	uc, repo, _ := setupAccountUCTest(t)
	repo.failWith = fmt.Errorf("%w: connection refused", apperrors.ErrDependencyUnavailable)

	_, err := uc.Login(context.Background(), models.KindRider, &models.LoginRequest{
		Email: "ada@example.com", Password: "whatever pass",
	})

	// A store outage is not an authentication verdict.
	assert.ErrorIs(t, err, apperrors.ErrDependencyUnavailable)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	uc, _, revocations := setupAccountUCTest(t)
	resp := registerTestRider(t, uc)

	require.NoError(t, uc.Logout(context.Background(), resp.Token))

	// The token no longer verifies.
	_, err := uc.verifier.Verify(context.Background(), resp.Token)
	assert.ErrorIs(t, err, token.ErrRevoked)

	// Retention is bounded by the credential's remaining validity.
	ttl := revocations.revoked[resp.Token]
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, 60*time.Minute)
}

func TestLogout_Idempotent(t *testing.T) {
	uc, _, _ := setupAccountUCTest(t)
	resp := registerTestRider(t, uc)

	require.NoError(t, uc.Logout(context.Background(), resp.Token))
	assert.NoError(t, uc.Logout(context.Background(), resp.Token))
}

func TestLogout_Garbage(t *testing.T) {
	uc, _, _ := setupAccountUCTest(t)

	err := uc.Logout(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestLogout_NoCredential(t *testing.T) {
	uc, _, _ := setupAccountUCTest(t)

	err := uc.Logout(context.Background(), "")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLogout_ExpiredIsNoOp(t *testing.T) {
	jwtCfg := models.JWTConfig{Secret: "test-secret-key", Issuer: "gocab-test", Expiration: 60}
	repo := newFakeAccountRepo()
	revocations := newFakeRevocationStore()

	// Issue with a negative validity window so the token arrives expired.
	expiredIssuer := token.NewIssuer(models.JWTConfig{Secret: jwtCfg.Secret, Issuer: jwtCfg.Issuer, Expiration: -1})
	tok, _, err := expiredIssuer.Issue(uuid.New().String(), models.KindRider)
	require.NoError(t, err)

	uc := NewAccountUC(&models.Config{JWT: jwtCfg}, repo, revocations,
		token.NewIssuer(jwtCfg), token.NewVerifier(jwtCfg, revocations))

	assert.NoError(t, uc.Logout(context.Background(), tok))
	assert.Empty(t, revocations.revoked)
}

func TestLogout_StoreUnavailable(t *testing.T) {
	uc, _, revocations := setupAccountUCTest(t)
	resp := registerTestRider(t, uc)

	revocations.failWith = fmt.Errorf("%w: connection refused", apperrors.ErrDependencyUnavailable)

	err := uc.Logout(context.Background(), resp.Token)

	assert.ErrorIs(t, err, apperrors.ErrDependencyUnavailable)
}

func TestProfiles(t *testing.T) {
	uc, _, _ := setupAccountUCTest(t)
	resp := registerTestRider(t, uc)

	rider, err := uc.RiderProfile(context.Background(), resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", rider.Email)

	_, err = uc.CaptainProfile(context.Background(), resp.UserID)
	assert.Error(t, err)
}
