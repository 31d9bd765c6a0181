package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
)

// Palette holds the chart colors assigned to category rows by position.
var Palette = []string{
	"#4E79A7", "#F28E2B", "#E15759", "#76B7B2", "#59A14F",
	"#EDC948", "#B07AA1", "#FF9DA7", "#9C755F", "#BAB0AC",
}

// TypeTotals maps every entry type to the sum of its amounts.
type TypeTotals map[entry.EntryType]decimal.Decimal

func newTypeTotals() TypeTotals {
	totals := make(TypeTotals, len(entry.AllTypes))
	for _, t := range entry.AllTypes {
		totals[t] = decimal.Zero
	}
	return totals
}

func (t TypeTotals) add(e entry.Entry) {
	t[e.Type] = t[e.Type].Add(e.Amount)
}

// Solde is revenus minus every other type.
func (t TypeTotals) Solde() decimal.Decimal {
	solde := decimal.Zero
	for _, entryType := range entry.AllTypes {
		solde = solde.Add(entry.Signed(entryType, entry.BalanceContext, t[entryType]))
	}
	return solde
}

type MonthlyBucket struct {
	Month  time.Month
	Totals TypeTotals
	Solde  decimal.Decimal
}

type YearlyRow struct {
	Year   int
	Totals TypeTotals
	Solde  decimal.Decimal
}

type CategoryRow struct {
	Name     string
	Value    decimal.Decimal
	Type     entry.EntryType
	Category string
	Color    string
}

// MonthlyRollup returns twelve buckets, January first. Entries of other years are ignored.
func MonthlyRollup(entries []entry.Entry, year int) []MonthlyBucket {
	buckets := make([]MonthlyBucket, 12)
	for i := range buckets {
		buckets[i] = MonthlyBucket{Month: time.Month(i + 1), Totals: newTypeTotals()}
	}
	for _, e := range entries {
		if e.Date.Year() != year {
			continue
		}
		buckets[e.Date.Month()-1].Totals.add(e)
	}
	for i := range buckets {
		buckets[i].Solde = buckets[i].Totals.Solde()
	}
	return buckets
}

// YearlyRollup returns one row per requested year, in request order.
func YearlyRollup(entries []entry.Entry, years []int) []YearlyRow {
	byYear := make(map[int]TypeTotals, len(years))
	for _, year := range years {
		byYear[year] = newTypeTotals()
	}
	for _, e := range entries {
		if totals, ok := byYear[e.Date.Year()]; ok {
			totals.add(e)
		}
	}
	rows := make([]YearlyRow, 0, len(years))
	for _, year := range years {
		totals := byYear[year]
		rows = append(rows, YearlyRow{Year: year, Totals: totals, Solde: totals.Solde()})
	}
	return rows
}

// CategoryBreakdown sums the year's entries per (type, category), expenses negative, sorted by
// value descending. Zero rows are dropped and colors follow the sorted position.
func CategoryBreakdown(entries []entry.Entry, year int, catalog *entry.Catalog) []CategoryRow {
	type key struct {
		entryType entry.EntryType
		category  string
	}
	sums := make(map[key]decimal.Decimal)
	for _, e := range entries {
		if e.Date.Year() != year {
			continue
		}
		k := key{e.Type, e.Category}
		sums[k] = sums[k].Add(entry.Signed(e.Type, entry.DisplayContext, e.Amount))
	}

	rows := make([]CategoryRow, 0, len(sums))
	for k, value := range sums {
		if value.IsZero() {
			continue
		}
		rows = append(rows, CategoryRow{
			Name:     catalog.Label(k.category),
			Value:    value,
			Type:     k.entryType,
			Category: k.category,
		})
	}
	slices.SortFunc(rows, func(a, b CategoryRow) int {
		if c := b.Value.Cmp(a.Value); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Type.Order(), b.Type.Order()); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	for i := range rows {
		rows[i].Color = Palette[i%len(Palette)]
	}
	return rows
}

// TopExpenses keeps the negative rows, largest spending first. A limit <= 0 keeps them all.
func TopExpenses(rows []CategoryRow, limit int) []CategoryRow {
	expenses := make([]CategoryRow, 0)
	for _, row := range rows {
		if row.Value.IsNegative() {
			expenses = append(expenses, row)
		}
	}
	slices.SortStableFunc(expenses, func(a, b CategoryRow) int {
		return b.Value.Abs().Cmp(a.Value.Abs())
	})
	if limit > 0 && len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses
}

// AvailableYears lists the distinct years of the ledger, most recent first.
func AvailableYears(entries []entry.Entry) []int {
	years := make([]int, 0)
	for _, e := range entries {
		if !slices.Contains(years, e.Date.Year()) {
			years = append(years, e.Date.Year())
		}
	}
	slices.SortFunc(years, func(a, b int) int { return cmp.Compare(b, a) })
	return years
}
