package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EntryCreatedEvent EventType = "ledger.entry.created"
	EntryDeletedEvent EventType = "ledger.entry.deleted"
)

type EntryCreated struct {
	OwnerId     string
	Id          string
	Date        time.Time
	Type        string
	Category    string
	Amount      decimal.Decimal
	Description string
	IsRecurring bool
}

type EntryDeleted struct {
	OwnerId string
	Id      string
}
