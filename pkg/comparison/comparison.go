package comparison

import (
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type TypeComparison struct {
	Period1 map[entry.EntryType]decimal.Decimal
	Period2 map[entry.EntryType]decimal.Decimal
}

// CategoryComparison holds the union of categories seen in either period. A category absent
// from one period is zero there.
type CategoryComparison struct {
	Period1 map[string]decimal.Decimal
	Period2 map[string]decimal.Decimal
}

type Diff struct {
	Value1     decimal.Decimal
	Value2     decimal.Decimal
	Difference decimal.Decimal
	// Percentage is invalid when Value1 is zero.
	Percentage decimal.NullDecimal
	Improved   bool
}

// ResolvePeriodEntries returns the entries dated inside the period, in ledger order.
func ResolvePeriodEntries(entries []entry.Entry, period entry.Period) []entry.Entry {
	matched := make([]entry.Entry, 0)
	for _, e := range entries {
		if period.Contains(e.Date) {
			matched = append(matched, e)
		}
	}
	return matched
}

func CompareByType(entries []entry.Entry, p1, p2 entry.Period) TypeComparison {
	return TypeComparison{
		Period1: totalsByType(ResolvePeriodEntries(entries, p1)),
		Period2: totalsByType(ResolvePeriodEntries(entries, p2)),
	}
}

func CompareByCategory(entries []entry.Entry, p1, p2 entry.Period) CategoryComparison {
	cmp := CategoryComparison{
		Period1: totalsByCategory(ResolvePeriodEntries(entries, p1)),
		Period2: totalsByCategory(ResolvePeriodEntries(entries, p2)),
	}
	for category := range cmp.Period1 {
		if _, ok := cmp.Period2[category]; !ok {
			cmp.Period2[category] = decimal.Zero
		}
	}
	for category := range cmp.Period2 {
		if _, ok := cmp.Period1[category]; !ok {
			cmp.Period1[category] = decimal.Zero
		}
	}
	return cmp
}

func DiffAndClassify(value1, value2 decimal.Decimal, rule ImprovementRule) Diff {
	difference := value2.Sub(value1)
	diff := Diff{
		Value1:     value1,
		Value2:     value2,
		Difference: difference,
		Improved:   rule(difference),
	}
	if !value1.IsZero() {
		diff.Percentage = decimal.NewNullDecimal(difference.Mul(hundred).Div(value1))
	}
	return diff
}

// PercentageLabel renders the percentage with one decimal place and an explicit sign, or N/A.
func (d Diff) PercentageLabel() string {
	if !d.Percentage.Valid {
		return "N/A"
	}
	rounded := d.Percentage.Decimal.Round(1)
	if rounded.IsNegative() {
		return rounded.StringFixed(1) + "%"
	}
	return "+" + rounded.StringFixed(1) + "%"
}

func totalsByType(entries []entry.Entry) map[entry.EntryType]decimal.Decimal {
	totals := make(map[entry.EntryType]decimal.Decimal, len(entry.AllTypes))
	for _, t := range entry.AllTypes {
		totals[t] = decimal.Zero
	}
	for _, e := range entries {
		totals[e.Type] = totals[e.Type].Add(e.Amount.Abs())
	}
	return totals
}

func totalsByCategory(entries []entry.Entry) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		totals[e.Category] = totals[e.Category].Add(e.Amount.Abs())
	}
	return totals
}
