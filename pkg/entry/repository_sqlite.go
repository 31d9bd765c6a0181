package entry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// SqliteRepository stores entries in a local SQLite file, used for single-user setups.
type SqliteRepository struct {
	db *sql.DB
}

func NewSqliteRepository(db *sql.DB) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) LoadEntries(ctx context.Context, ownerId string) ([]Entry, error) {
	query := `SELECT id, entry_date, entry_type, category, amount, description, is_recurring
			  FROM budget_entry
			  WHERE owner_id = ?
			  ORDER BY entry_date, created, rowid`
	rows, err := r.db.QueryContext(ctx, query, ownerId)
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
			date      string
			entryType string
			amount    string
		)
		if err := rows.Scan(&e.Id, &date, &entryType, &e.Category, &amount, &e.Description, &e.IsRecurring); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		parsedDate, err := time.Parse(DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("invalid date stored for entry %s: %w", e.Id, err)
		}
		e.Date = parsedDate
		e.Type = EntryType(entryType)
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

func (r *SqliteRepository) SaveEntry(ctx context.Context, ownerId string, entry Entry) (Entry, error) {
	query := `INSERT INTO budget_entry (id, owner_id, entry_date, entry_type, category, amount, description, is_recurring)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT (id) DO UPDATE SET
			      entry_date = excluded.entry_date,
			      entry_type = excluded.entry_type,
			      category = excluded.category,
			      amount = excluded.amount,
			      description = excluded.description,
			      is_recurring = excluded.is_recurring
			  WHERE budget_entry.owner_id = excluded.owner_id`
	result, err := r.db.ExecContext(ctx, query,
		entry.Id,
		ownerId,
		entry.Date.Format(DateLayout),
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
	affected, err := result.RowsAffected()
	if err != nil {
		return Entry{}, fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (r *SqliteRepository) DeleteEntry(ctx context.Context, ownerId string, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM budget_entry WHERE id = ? AND owner_id = ?`, id, ownerId)
	if err != nil {
		err := fmt.Errorf("could not delete entry: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return affected > 0, nil
}
