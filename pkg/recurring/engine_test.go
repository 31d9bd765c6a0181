package recurring

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = entry.DefaultCatalog()

var rules = []Rule{
	{Id: "rent", Amount: decimal.RequireFromString("850"), Category: "loyer", DayOfMonth: 5},
	{Id: "internet", Amount: decimal.RequireFromString("29.99"), Category: "internet", DayOfMonth: 20},
	{Id: "insurance", Amount: decimal.RequireFromString("45"), Category: "assurance", DayOfMonth: 31},
}

func TestMaterializeCurrentMonth(t *testing.T) {
	t.Run("should backdate to rule day or today, never in the future", func(t *testing.T) {
		// given
		now := time.Date(2025, time.February, 10, 18, 30, 0, 0, time.UTC)

		// when
		generated := MaterializeCurrentMonth(nil, rules, now, catalog)

		// then
		require.Len(t, generated, 3)
		assert.Equal(t, entry.NewDate(2025, time.February, 5), generated[0].Date)
		assert.Equal(t, entry.NewDate(2025, time.February, 10), generated[1].Date)
		assert.Equal(t, entry.NewDate(2025, time.February, 10), generated[2].Date)
		for i, e := range generated {
			assert.Equal(t, entry.DepensesFixes, e.Type)
			assert.True(t, e.IsRecurring)
			assert.Equal(t, rules[i].Category, e.Category)
			assert.True(t, rules[i].Amount.Equal(e.Amount))
			assert.NoError(t, e.Validate(catalog))
		}
		assert.Equal(t, "Loyer (automatique)", generated[0].Description)
		assert.Equal(t, "Assurance (automatique)", generated[2].Description)
	})

	t.Run("rule day elapsed keeps rule day", func(t *testing.T) {
		// given
		now := time.Date(2025, time.March, 28, 8, 0, 0, 0, time.UTC)

		// when
		generated := MaterializeCurrentMonth(nil, rules[:2], now, catalog)

		// then
		require.Len(t, generated, 2)
		assert.Equal(t, entry.NewDate(2025, time.March, 5), generated[0].Date)
		assert.Equal(t, entry.NewDate(2025, time.March, 20), generated[1].Date)
	})

	t.Run("should clamp day to month length", func(t *testing.T) {
		now := time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC)

		generated := MaterializeCurrentMonth(nil, rules[2:], now, catalog)

		require.Len(t, generated, 1)
		assert.Equal(t, entry.NewDate(2024, time.February, 29), generated[0].Date)
	})

	t.Run("should do nothing once a recurring entry landed this month", func(t *testing.T) {
		// given
		now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
		existing := []entry.Entry{
			{Id: "x", Date: entry.NewDate(2025, time.March, 1), Type: entry.DepensesFixes, Category: "loyer", IsRecurring: true},
		}

		// when
		generated := MaterializeCurrentMonth(existing, rules, now, catalog)

		// then
		assert.NotNil(t, generated)
		assert.Empty(t, generated)
	})

	t.Run("should ignore recurring entries of other months and manual entries", func(t *testing.T) {
		now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
		existing := []entry.Entry{
			{Id: "feb", Date: entry.NewDate(2025, time.February, 5), Type: entry.DepensesFixes, Category: "loyer", IsRecurring: true},
			{Id: "lastYear", Date: entry.NewDate(2024, time.March, 5), Type: entry.DepensesFixes, Category: "loyer", IsRecurring: true},
			{Id: "manual", Date: entry.NewDate(2025, time.March, 2), Type: entry.DepensesFixes, Category: "loyer"},
		}

		generated := MaterializeCurrentMonth(existing, rules, now, catalog)

		assert.Len(t, generated, 3)
	})

	t.Run("should produce deterministic ids per rule and month", func(t *testing.T) {
		march := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
		laterInMarch := time.Date(2025, time.March, 28, 0, 0, 0, 0, time.UTC)
		april := time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)

		first := MaterializeCurrentMonth(nil, rules, march, catalog)
		second := MaterializeCurrentMonth(nil, rules, laterInMarch, catalog)
		next := MaterializeCurrentMonth(nil, rules, april, catalog)

		for i := range rules {
			assert.Equal(t, first[i].Id, second[i].Id)
			assert.NotEqual(t, first[i].Id, next[i].Id)
		}
		assert.NotEqual(t, first[0].Id, first[1].Id)
		assert.Equal(t, EntryId("rent", 2025, time.March), first[0].Id)
		parsed, err := uuid.Parse(first[0].Id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(5), parsed.Version())
	})

	t.Run("should return nothing without rules", func(t *testing.T) {
		generated := MaterializeCurrentMonth(nil, nil, time.Now(), catalog)

		assert.NotNil(t, generated)
		assert.Empty(t, generated)
	})
}

func TestRule_Validate(t *testing.T) {
	valid := Rule{Id: "r", Amount: decimal.NewFromInt(10), Category: "loyer", DayOfMonth: 31}
	assert.NoError(t, valid.Validate(catalog))

	tests := []struct {
		name   string
		mutate func(r *Rule)
	}{
		{"missing id", func(r *Rule) { r.Id = "" }},
		{"negative amount", func(r *Rule) { r.Amount = decimal.NewFromInt(-1) }},
		{"variable expense category", func(r *Rule) { r.Category = "courses" }},
		{"unknown category", func(r *Rule) { r.Category = "netflix" }},
		{"day zero", func(r *Rule) { r.DayOfMonth = 0 }},
		{"day 32", func(r *Rule) { r.DayOfMonth = 32 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := valid
			tt.mutate(&rule)

			err := rule.Validate(catalog)

			assert.ErrorIs(t, err, ErrInvalidRule)
			assert.ErrorIs(t, err, entry.ErrValidation)
		})
	}
}

func TestValidateRules_RejectsDuplicatedIds(t *testing.T) {
	err := ValidateRules([]Rule{rules[0], rules[0]}, catalog)

	assert.ErrorIs(t, err, ErrInvalidRule)
}
