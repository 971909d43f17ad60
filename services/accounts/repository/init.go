package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/gocab/gocab/internal/pkg/database"
	"github.com/gocab/gocab/internal/pkg/models"
)

// AccountRepo implements the account persistence and revocation interfaces
// on postgres and redis.
type AccountRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(cfg *models.Config, db *sqlx.DB, redisClient *database.RedisClient) *AccountRepo {
	return &AccountRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}
