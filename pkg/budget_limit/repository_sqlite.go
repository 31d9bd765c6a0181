package budget_limit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klokku/budgettracker/pkg/entry"
	log "github.com/sirupsen/logrus"
)

type SqliteRepository struct {
	db *sql.DB
}

func NewSqliteRepository(db *sql.DB) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) Load(ctx context.Context, ownerId string) (Config, error) {
	var document string
	err := r.db.QueryRowContext(ctx, `SELECT config FROM budget_limit WHERE owner_id = ?`, ownerId).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return EmptyConfig(), nil
	}
	if err != nil {
		err := fmt.Errorf("%w: could not query budget limits: %v", entry.ErrNotAvailable, err)
		log.Error(err)
		return Config{}, err
	}
	return decodeConfig([]byte(document))
}

func (r *SqliteRepository) Save(ctx context.Context, ownerId string, cfg Config) error {
	document, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode budget limits: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO budget_limit (owner_id, config) VALUES (?, ?)
		 ON CONFLICT (owner_id) DO UPDATE SET config = excluded.config, updated = CURRENT_TIMESTAMP`,
		ownerId, string(document))
	if err != nil {
		err := fmt.Errorf("could not save budget limits: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
