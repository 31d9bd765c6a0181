package recurring

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type SqliteRepository struct {
	db *sql.DB
}

func NewSqliteRepository(db *sql.DB) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) LoadRules(ctx context.Context, ownerId string) ([]Rule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, category, day_of_month FROM recurring_rule WHERE owner_id = ? ORDER BY position, id`,
		ownerId)
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
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if rule.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid amount stored for rule %s: %w", rule.Id, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating over rows: %v", entry.ErrNotAvailable, err)
	}
	return rules, nil
}

func (r *SqliteRepository) SaveRules(ctx context.Context, ownerId string, rules []Rule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recurring_rule WHERE owner_id = ?`, ownerId); err != nil {
		return fmt.Errorf("could not clear recurring rules: %w", err)
	}
	for position, rule := range rules {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recurring_rule (id, owner_id, amount, category, day_of_month, position) VALUES (?, ?, ?, ?, ?, ?)`,
			rule.Id, ownerId, rule.Amount.String(), rule.Category, rule.DayOfMonth, position)
		if err != nil {
			err := fmt.Errorf("could not insert recurring rule %s: %w", rule.Id, err)
			log.Error(err)
			return err
		}
	}
	return tx.Commit()
}
