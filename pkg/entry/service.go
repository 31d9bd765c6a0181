package entry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/klokku/budgettracker/internal/event_bus"
	"github.com/klokku/budgettracker/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Ledger returns every entry of the current owner. An unreachable store yields an empty ledger.
	Ledger(ctx context.Context) ([]Entry, error)
	Create(ctx context.Context, entry Entry) (Entry, error)
	// Store saves the entry as is, keeping its id. Used for generated entries.
	Store(ctx context.Context, entry Entry) (Entry, error)
	Update(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, id string) error
	Catalog() *Catalog
}

type ServiceImpl struct {
	repo     Repository
	catalog  *Catalog
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, catalog *Catalog, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, catalog: catalog, eventBus: eventBus}
}

func (s *ServiceImpl) Catalog() *Catalog {
	return s.catalog
}

func (s *ServiceImpl) Ledger(ctx context.Context) ([]Entry, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	entries, err := s.repo.LoadEntries(ctx, ownerId)
	if err != nil {
		if errors.Is(err, ErrNotAvailable) {
			log.Warnf("ledger of %s not available, continuing with an empty one: %v", ownerId, err)
			return []Entry{}, nil
		}
		return nil, err
	}
	log.Tracef("Loaded %d entries for %s", len(entries), ownerId)
	return entries, nil
}

// Create stores a manual entry. IsRecurring is never taken from the input.
func (s *ServiceImpl) Create(ctx context.Context, entry Entry) (Entry, error) {
	created, err := New(s.catalog, entry.Date, entry.Type, entry.Category, entry.Amount, entry.Description)
	if err != nil {
		return Entry{}, err
	}
	return s.Store(ctx, created)
}

func (s *ServiceImpl) Store(ctx context.Context, entry Entry) (Entry, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if entry.Id == "" {
		return Entry{}, NewValidationError("id", "id is required")
	}
	if err := entry.Validate(s.catalog); err != nil {
		return Entry{}, err
	}

	stored, err := s.repo.SaveEntry(ctx, ownerId, entry)
	if err != nil {
		return Entry{}, err
	}
	s.publish(ctx, event_bus.EntryCreatedEvent, event_bus.EntryCreated{
		OwnerId:     ownerId,
		Id:          stored.Id,
		Date:        stored.Date,
		Type:        string(stored.Type),
		Category:    stored.Category,
		Amount:      stored.Amount,
		Description: stored.Description,
		IsRecurring: stored.IsRecurring,
	})
	return stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, entry Entry) (Entry, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if entry.Id == "" {
		return Entry{}, NewValidationError("id", "id is required")
	}
	if err := entry.Validate(s.catalog); err != nil {
		return Entry{}, err
	}
	entries, err := s.repo.LoadEntries(ctx, ownerId)
	if err != nil {
		return Entry{}, err
	}
	idx := slices.IndexFunc(entries, func(e Entry) bool { return e.Id == entry.Id })
	if idx < 0 {
		return Entry{}, ErrEntryNotFound
	}
	// the recurring flag belongs to the stored entry
	entry.IsRecurring = entries[idx].IsRecurring
	entry.Description = strings.TrimSpace(entry.Description)
	return s.repo.SaveEntry(ctx, ownerId, entry)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteEntry(ctx, ownerId, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("entry not deleted, probably because it does not exist (%s) or %s is not the owner", id, ownerId)
		return ErrEntryNotFound
	}
	s.publish(ctx, event_bus.EntryDeletedEvent, event_bus.EntryDeleted{OwnerId: ownerId, Id: id})
	return nil
}

// publish does not fail the operation: the entry is already stored when subscribers run.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s event: %v", eventType, err)
	}
}
