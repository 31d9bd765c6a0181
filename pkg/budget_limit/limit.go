package budget_limit

import (
	"fmt"
	"time"

	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Config holds the monthly limits per category and the long-term goals. A missing or zero value
// means the limit is not configured.
type Config struct {
	// Categories limits expense categories, fixed and variable.
	Categories      map[string]decimal.Decimal `json:"categories"`
	Epargne         map[string]decimal.Decimal `json:"epargne"`
	Investissements map[string]decimal.Decimal `json:"investissements"`
	LongTerm        LongTermGoals              `json:"longTerm"`
}

type LongTermGoals struct {
	Epargne         decimal.Decimal `json:"epargne"`
	Investissements decimal.Decimal `json:"investissements"`
}

func EmptyConfig() Config {
	return Config{
		Categories:      map[string]decimal.Decimal{},
		Epargne:         map[string]decimal.Decimal{},
		Investissements: map[string]decimal.Decimal{},
	}
}

func (c Config) normalized() Config {
	if c.Categories == nil {
		c.Categories = map[string]decimal.Decimal{}
	}
	if c.Epargne == nil {
		c.Epargne = map[string]decimal.Decimal{}
	}
	if c.Investissements == nil {
		c.Investissements = map[string]decimal.Decimal{}
	}
	return c
}

// LimitFor returns the monthly limit of a category, zero when none is set.
func (c Config) LimitFor(t entry.EntryType, category string) decimal.Decimal {
	switch {
	case t.IsExpense():
		return c.Categories[category]
	case t == entry.Epargne:
		return c.Epargne[category]
	case t == entry.Investissements:
		return c.Investissements[category]
	}
	return decimal.Zero
}

// GoalFor returns the long-term goal of epargne or investissements.
func (c Config) GoalFor(t entry.EntryType) decimal.Decimal {
	switch t {
	case entry.Epargne:
		return c.LongTerm.Epargne
	case entry.Investissements:
		return c.LongTerm.Investissements
	}
	return decimal.Zero
}

// Validate checks every key belongs to the section it is set in and no value is negative.
func (c Config) Validate(catalog *entry.Catalog) error {
	sections := []struct {
		name   string
		limits map[string]decimal.Decimal
		allows func(entry.EntryType) bool
	}{
		{"categories", c.Categories, entry.EntryType.IsExpense},
		{"epargne", c.Epargne, func(t entry.EntryType) bool { return t == entry.Epargne }},
		{"investissements", c.Investissements, func(t entry.EntryType) bool { return t == entry.Investissements }},
	}
	for _, section := range sections {
		for key, limit := range section.limits {
			t, ok := catalog.TypeOf(key)
			if !ok || !section.allows(t) {
				return entry.NewValidationError(section.name, fmt.Sprintf("%s is not allowed here", key))
			}
			if limit.IsNegative() {
				return entry.NewValidationError(section.name, fmt.Sprintf("limit of %s must not be negative", key))
			}
		}
	}
	if c.LongTerm.Epargne.IsNegative() || c.LongTerm.Investissements.IsNegative() {
		return entry.NewValidationError("longTerm", "goals must not be negative")
	}
	return nil
}

// Progress compares an amount against a limit. When the limit is not configured only Spent is
// meaningful.
type Progress struct {
	Spent      decimal.Decimal
	Limit      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage decimal.Decimal
	OverBudget bool
	Configured bool
}

func newProgress(spent, limit decimal.Decimal) Progress {
	if !limit.IsPositive() {
		return Progress{Spent: spent, Limit: decimal.Zero}
	}
	remaining := limit.Sub(spent)
	return Progress{
		Spent:      spent,
		Limit:      limit,
		Remaining:  remaining,
		Percentage: spent.Mul(hundred).Div(limit),
		OverBudget: remaining.IsNegative(),
		Configured: true,
	}
}

// ProgressFor computes the progress of one category over the month of now.
func ProgressFor(entries []entry.Entry, cfg Config, t entry.EntryType, category string, now time.Time) Progress {
	year, month, _ := now.Date()
	spent := decimal.Zero
	for _, e := range entries {
		if e.Type == t && e.Category == category && e.SameMonth(year, month) {
			spent = spent.Add(e.Amount)
		}
	}
	return newProgress(spent, cfg.LimitFor(t, category))
}

type CategoryProgress struct {
	Type     entry.EntryType
	Category string
	Progress
}

// AllProgress returns the progress of every configured limit, by type order then catalog order.
func AllProgress(entries []entry.Entry, cfg Config, catalog *entry.Catalog, now time.Time) []CategoryProgress {
	result := make([]CategoryProgress, 0)
	for _, t := range entry.AllTypes {
		for _, category := range catalog.Categories(t) {
			if !cfg.LimitFor(t, category.Key).IsPositive() {
				continue
			}
			result = append(result, CategoryProgress{
				Type:     t,
				Category: category.Key,
				Progress: ProgressFor(entries, cfg, t, category.Key, now),
			})
		}
	}
	return result
}

// LongTermProgress compares the all-time total of a type against its long-term goal.
func LongTermProgress(entries []entry.Entry, cfg Config, t entry.EntryType) Progress {
	total := decimal.Zero
	for _, e := range entries {
		if e.Type == t {
			total = total.Add(e.Amount)
		}
	}
	return newProgress(total, cfg.GoalFor(t))
}
