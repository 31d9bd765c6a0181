package entry

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// ParseAmount accepts both "12.34" and "12,34". Negative values are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, NewValidationError("amount", "amount is required")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewValidationError("amount", "not a number: "+s)
	}
	if amount.IsNegative() {
		return decimal.Zero, NewValidationError("amount", "amount must not be negative")
	}
	return amount, nil
}

func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, NewValidationError("date", "expected YYYY-MM-DD, got "+s)
	}
	return date, nil
}

func ParseType(s string) (EntryType, error) {
	t := EntryType(strings.TrimSpace(s))
	if !t.IsValid() {
		return "", NewValidationError("type", "unknown entry type "+s)
	}
	return t, nil
}
