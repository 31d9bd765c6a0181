package entry

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryType string

const (
	Revenus           EntryType = "revenus"
	DepensesFixes     EntryType = "depenses_fixes"
	DepensesVariables EntryType = "depenses_variables"
	Epargne           EntryType = "epargne"
	Investissements   EntryType = "investissements"
)

// AllTypes lists every entry type in canonical display order.
var AllTypes = []EntryType{Revenus, DepensesFixes, DepensesVariables, Epargne, Investissements}

var typeLabels = map[EntryType]string{
	Revenus:           "Revenus",
	DepensesFixes:     "Dépenses fixes",
	DepensesVariables: "Dépenses variables",
	Epargne:           "Épargne",
	Investissements:   "Investissements",
}

func (t EntryType) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

func (t EntryType) IsValid() bool {
	_, ok := typeLabels[t]
	return ok
}

// IsExpense reports whether the type is one of the two spending types.
func (t EntryType) IsExpense() bool {
	return t == DepensesFixes || t == DepensesVariables
}

// Order returns the position of the type in AllTypes, or len(AllTypes) when unknown.
func (t EntryType) Order() int {
	for i, candidate := range AllTypes {
		if candidate == t {
			return i
		}
	}
	return len(AllTypes)
}

type Entry struct {
	Id   string
	Date time.Time
	Type EntryType
	// Category is a key of the type's category set in the Catalog.
	Category string
	// Amount is always a non-negative magnitude, the direction comes from Type.
	Amount      decimal.Decimal
	Description string
	// IsRecurring marks entries generated from a recurring rule.
	IsRecurring bool
}

// New validates the fields against the catalog and returns an entry with a fresh id.
func New(catalog *Catalog, date time.Time, entryType EntryType, category string, amount decimal.Decimal, description string) (Entry, error) {
	e := Entry{
		Id:          uuid.NewString(),
		Date:        NewDate(date.Year(), date.Month(), date.Day()),
		Type:        entryType,
		Category:    category,
		Amount:      amount,
		Description: strings.TrimSpace(description),
	}
	if date.IsZero() {
		e.Date = time.Time{}
	}
	if err := e.Validate(catalog); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (e Entry) Validate(catalog *Catalog) error {
	if e.Date.IsZero() {
		return NewValidationError("date", "date is required")
	}
	if !e.Type.IsValid() {
		return NewValidationError("type", "unknown entry type "+string(e.Type))
	}
	if !catalog.Contains(e.Type, e.Category) {
		return NewValidationError("category", "category "+e.Category+" does not belong to "+string(e.Type))
	}
	if e.Amount.IsNegative() {
		return NewValidationError("amount", "amount must not be negative")
	}
	return nil
}

// DisplayDescription returns the description, or the category label when it is blank.
func (e Entry) DisplayDescription(catalog *Catalog) string {
	if strings.TrimSpace(e.Description) != "" {
		return e.Description
	}
	return catalog.Label(e.Category)
}

// NewDate returns the given calendar day at UTC midnight.
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SameMonth reports whether the entry date falls in the given year and month.
func (e Entry) SameMonth(year int, month time.Month) bool {
	return e.Date.Year() == year && e.Date.Month() == month
}
