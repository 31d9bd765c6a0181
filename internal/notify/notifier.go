package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klokku/budgettracker/internal/event_bus"
	"github.com/shopspring/decimal"
)

// Message is the JSON body sent for every ledger change. Deletions only carry the ids.
type Message struct {
	Event       string           `json:"event"`
	OwnerId     string           `json:"ownerId"`
	EntryId     string           `json:"entryId"`
	Date        string           `json:"date,omitempty"`
	Type        string           `json:"type,omitempty"`
	Category    string           `json:"category,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description string           `json:"description,omitempty"`
	IsRecurring bool             `json:"isRecurring,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

func MessageFromCreated(e event_bus.EventT[event_bus.EntryCreated]) Message {
	amount := e.Data.Amount
	return Message{
		Event:       string(e.Type),
		OwnerId:     e.Data.OwnerId,
		EntryId:     e.Data.Id,
		Date:        e.Data.Date.Format("2006-01-02"),
		Type:        e.Data.Type,
		Category:    e.Data.Category,
		Amount:      &amount,
		Description: e.Data.Description,
		IsRecurring: e.Data.IsRecurring,
		Timestamp:   e.Timestamp,
	}
}

func MessageFromDeleted(e event_bus.EventT[event_bus.EntryDeleted]) Message {
	return Message{
		Event:     string(e.Type),
		OwnerId:   e.Data.OwnerId,
		EntryId:   e.Data.Id,
		Timestamp: e.Timestamp,
	}
}

// Notifier forwards ledger events from the bus to a Publisher.
type Notifier struct {
	publisher Publisher
}

func NewNotifier(publisher Publisher) *Notifier {
	return &Notifier{publisher: publisher}
}

// Subscribe registers the notifier on the bus and returns a function removing it.
func (n *Notifier) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	unsubCreated := event_bus.SubscribeTyped[event_bus.EntryCreated](bus, event_bus.EntryCreatedEvent,
		func(e event_bus.EventT[event_bus.EntryCreated]) error {
			return n.send(e.Context(), MessageFromCreated(e))
		})
	unsubDeleted := event_bus.SubscribeTyped[event_bus.EntryDeleted](bus, event_bus.EntryDeletedEvent,
		func(e event_bus.EventT[event_bus.EntryDeleted]) error {
			return n.send(e.Context(), MessageFromDeleted(e))
		})
	return func() {
		unsubCreated()
		unsubDeleted()
	}
}

func (n *Notifier) send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := n.publisher.Publish(ctx, msg.Event, body); err != nil {
		return fmt.Errorf("forward %s of entry %s: %w", msg.Event, msg.EntryId, err)
	}
	return nil
}
