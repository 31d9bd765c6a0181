package budget_limit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/budgettracker/pkg/entry"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// Load returns an empty config when the owner never saved one.
	Load(ctx context.Context, ownerId string) (Config, error)
	Save(ctx context.Context, ownerId string, cfg Config) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Load(ctx context.Context, ownerId string) (Config, error) {
	var document []byte
	err := r.db.QueryRow(ctx, `SELECT config FROM budget_limit WHERE owner_id = $1`, ownerId).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return EmptyConfig(), nil
	}
	if err != nil {
		err := fmt.Errorf("%w: could not query budget limits: %v", entry.ErrNotAvailable, err)
		log.Error(err)
		return Config{}, err
	}
	return decodeConfig(document)
}

func (r *RepositoryImpl) Save(ctx context.Context, ownerId string, cfg Config) error {
	document, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode budget limits: %w", err)
	}
	query := `INSERT INTO budget_limit (owner_id, config)
			  VALUES ($1, $2::jsonb)
			  ON CONFLICT (owner_id) DO UPDATE SET config = EXCLUDED.config, updated = now()`
	if _, err := r.db.Exec(ctx, query, ownerId, string(document)); err != nil {
		err := fmt.Errorf("could not save budget limits: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func decodeConfig(document []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(document, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid budget limits document: %w", err)
	}
	return cfg.normalized(), nil
}
