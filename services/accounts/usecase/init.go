package usecase

import (
	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/internal/pkg/token"
	"github.com/gocab/gocab/services/accounts"
)

// AccountUC implements the account and session usecase
type AccountUC struct {
	cfg         *models.Config
	repo        accounts.AccountRepo
	revocations accounts.RevocationStore
	issuer      *token.Issuer
	verifier    *token.Verifier
}

// NewAccountUC creates a new account usecase
func NewAccountUC(
	cfg *models.Config,
	repo accounts.AccountRepo,
	revocations accounts.RevocationStore,
	issuer *token.Issuer,
	verifier *token.Verifier,
) *AccountUC {
	return &AccountUC{
		cfg:         cfg,
		repo:        repo,
		revocations: revocations,
		issuer:      issuer,
		verifier:    verifier,
	}
}
