package recurring

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

var ErrInvalidRule = errors.New("invalid recurring rule")

// RecurringNamespace seeds the deterministic ids of generated entries.
var RecurringNamespace = uuid.MustParse("8a3f6d2e-41b7-4c09-9e55-7d1f0b6c2a91")

// Rule is a fixed monthly cost materialized into the ledger once per month.
type Rule struct {
	Id     string
	Amount decimal.Decimal
	// Category is a depenses_fixes category key.
	Category string
	// DayOfMonth is clamped to the month length when materialized.
	DayOfMonth int
}

// Validate checks the rule against the catalog. Errors match both ErrInvalidRule and
// entry.ErrValidation.
func (r Rule) Validate(catalog *entry.Catalog) error {
	switch {
	case r.Id == "":
		return invalid("id", "id is required")
	case r.Amount.IsNegative():
		return invalid("amount", "amount must not be negative")
	case !catalog.Contains(entry.DepensesFixes, r.Category):
		return invalid("category", r.Category+" is not a fixed expense category")
	case r.DayOfMonth < 1 || r.DayOfMonth > 31:
		return invalid("dayOfMonth", fmt.Sprintf("day %d out of range 1-31", r.DayOfMonth))
	}
	return nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %w", ErrInvalidRule, entry.NewValidationError(field, reason))
}

// ValidateRules validates every rule and rejects duplicated ids.
func ValidateRules(rules []Rule, catalog *entry.Catalog) error {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if err := r.Validate(catalog); err != nil {
			return err
		}
		if seen[r.Id] {
			return invalid("id", "duplicated rule id "+r.Id)
		}
		seen[r.Id] = true
	}
	return nil
}
