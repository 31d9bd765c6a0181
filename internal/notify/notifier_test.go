package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/klokku/budgettracker/internal/event_bus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	routingKey string
	body       []byte
}

type recordingPublisher struct {
	messages []published
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{routingKey, body})
	return nil
}

func setup(t *testing.T) (*event_bus.EventBus, *recordingPublisher, func()) {
	bus := event_bus.NewEventBus()
	publisher := &recordingPublisher{}
	unsubscribe := NewNotifier(publisher).Subscribe(bus)
	return bus, publisher, func() {
		t.Log("Teardown after test")
		unsubscribe()
	}
}

func TestNotifier_ForwardsCreatedEntries(t *testing.T) {
	bus, publisher, teardown := setup(t)
	defer teardown()

	// given
	created := event_bus.EntryCreated{
		OwnerId:     "owner-1",
		Id:          "entry-1",
		Date:        time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC),
		Type:        "depenses_fixes",
		Category:    "loyer",
		Amount:      decimal.RequireFromString("850.00"),
		Description: "Loyer (automatique)",
		IsRecurring: true,
	}

	// when
	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.EntryCreatedEvent, created))

	// then
	require.NoError(t, err)
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "ledger.entry.created", publisher.messages[0].routingKey)
	var msg Message
	require.NoError(t, json.Unmarshal(publisher.messages[0].body, &msg))
	assert.Equal(t, "owner-1", msg.OwnerId)
	assert.Equal(t, "entry-1", msg.EntryId)
	assert.Equal(t, "2025-03-04", msg.Date)
	assert.Equal(t, "loyer", msg.Category)
	require.NotNil(t, msg.Amount)
	assert.True(t, decimal.RequireFromString("850").Equal(*msg.Amount))
	assert.True(t, msg.IsRecurring)
}

func TestNotifier_ForwardsDeletedEntries(t *testing.T) {
	bus, publisher, teardown := setup(t)
	defer teardown()

	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.EntryDeletedEvent,
		event_bus.EntryDeleted{OwnerId: "owner-1", Id: "entry-1"}))

	require.NoError(t, err)
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "ledger.entry.deleted", publisher.messages[0].routingKey)
	assert.NotContains(t, string(publisher.messages[0].body), "amount")
	assert.Contains(t, string(publisher.messages[0].body), `"entryId":"entry-1"`)
}

func TestNotifier_ReportsPublishFailure(t *testing.T) {
	bus, publisher, teardown := setup(t)
	defer teardown()

	// given
	publisher.err = errors.New("connection closed")

	// when
	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.EntryDeletedEvent,
		event_bus.EntryDeleted{OwnerId: "owner-1", Id: "entry-1"}))

	// then
	assert.ErrorIs(t, err, publisher.err)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	bus, publisher, teardown := setup(t)
	teardown()

	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.EntryDeletedEvent,
		event_bus.EntryDeleted{OwnerId: "owner-1", Id: "entry-1"}))

	require.NoError(t, err)
	assert.Empty(t, publisher.messages)
}
