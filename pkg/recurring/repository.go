package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	LoadRules(ctx context.Context, ownerId string) ([]Rule, error)
	// SaveRules replaces the whole rule set of the owner.
	SaveRules(ctx context.Context, ownerId string, rules []Rule) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) LoadRules(ctx context.Context, ownerId string) ([]Rule, error) {
	query := `SELECT id, amount::text, category, day_of_month
			  FROM recurring_rule
			  WHERE owner_id = $1
			  ORDER BY position, id`
	rows, err := r.db.Query(ctx, query, ownerId)
	if err != nil {
		err := fmt.Errorf("%w: could not query recurring rules: %v", entry.ErrNotAvailable, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	rules := make([]Rule, 0)
	for rows.Next() {
		var (
			rule   Rule
			amount string
		)
		if err := rows.Scan(&rule.Id, &amount, &rule.Category, &rule.DayOfMonth); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		if rule.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid amount stored for rule %s: %w", rule.Id, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("%w: error iterating over rows: %v", entry.ErrNotAvailable, err)
		log.Error(err)
		return nil, err
	}
	return rules, nil
}

func (r *RepositoryImpl) SaveRules(ctx context.Context, ownerId string, rules []Rule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM recurring_rule WHERE owner_id = $1`, ownerId); err != nil {
		return fmt.Errorf("could not clear recurring rules: %w", err)
	}
	for position, rule := range rules {
		_, err := tx.Exec(ctx,
			`INSERT INTO recurring_rule (id, owner_id, amount, category, day_of_month, position)
			 VALUES ($1, $2, $3::numeric, $4, $5, $6)`,
			rule.Id, ownerId, rule.Amount.String(), rule.Category, rule.DayOfMonth, position)
		if err != nil {
			err := fmt.Errorf("could not insert recurring rule %s: %w", rule.Id, err)
			log.Error(err)
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recurring rules: %w", err)
	}
	return nil
}
