package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	LoadEntries(ctx context.Context, ownerId string) ([]Entry, error)
	// SaveEntry creates the entry or replaces the stored one with the same id.
	SaveEntry(ctx context.Context, ownerId string, entry Entry) (Entry, error)
	DeleteEntry(ctx context.Context, ownerId string, id string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) LoadEntries(ctx context.Context, ownerId string) ([]Entry, error) {
	query := `SELECT id, entry_date, entry_type, category, amount::text, description, is_recurring
			  FROM budget_entry
			  WHERE owner_id = $1
			  ORDER BY entry_date, created, id`
	rows, err := r.db.Query(ctx, query, ownerId)
	if err != nil {
		err := fmt.Errorf("%w: could not query entries: %v", ErrNotAvailable, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			e         Entry
			entryType string
			amount    string
			date      time.Time
		)
		if err := rows.Scan(&e.Id, &date, &entryType, &e.Category, &amount, &e.Description, &e.IsRecurring); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		e.Type = EntryType(entryType)
		e.Date = NewDate(date.Year(), date.Month(), date.Day())
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount stored for entry %s: %w", e.Id, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("%w: error iterating over rows: %v", ErrNotAvailable, err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}

func (r *RepositoryImpl) SaveEntry(ctx context.Context, ownerId string, entry Entry) (Entry, error) {
	query := `INSERT INTO budget_entry (id, owner_id, entry_date, entry_type, category, amount, description, is_recurring)
			  VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
			  ON CONFLICT (id) DO UPDATE SET
			      entry_date = EXCLUDED.entry_date,
			      entry_type = EXCLUDED.entry_type,
			      category = EXCLUDED.category,
			      amount = EXCLUDED.amount,
			      description = EXCLUDED.description,
			      is_recurring = EXCLUDED.is_recurring
			  WHERE budget_entry.owner_id = EXCLUDED.owner_id`
	result, err := r.db.Exec(ctx, query,
		entry.Id,
		ownerId,
		entry.Date,
		string(entry.Type),
		entry.Category,
		entry.Amount.String(),
		entry.Description,
		entry.IsRecurring,
	)
	if err != nil {
		err := fmt.Errorf("could not save entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	if result.RowsAffected() == 0 {
		return Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (r *RepositoryImpl) DeleteEntry(ctx context.Context, ownerId string, id string) (bool, error) {
	query := `DELETE FROM budget_entry WHERE id = $1 AND owner_id = $2`
	result, err := r.db.Exec(ctx, query, id, ownerId)
	if err != nil {
		err := fmt.Errorf("could not delete entry: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
