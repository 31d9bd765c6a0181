package table

import (
	"encoding/csv"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = entry.DefaultCatalog()

func e(id string, date time.Time, entryType entry.EntryType, category string, amount string, description string) entry.Entry {
	return entry.Entry{
		Id:          id,
		Date:        date,
		Type:        entryType,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Description: description,
	}
}

var ledger = []entry.Entry{
	e("a", entry.NewDate(2025, 1, 10), entry.DepensesVariables, "courses", "50", "Marché"),
	e("b", entry.NewDate(2025, 1, 10), entry.DepensesFixes, "loyer", "900", ""),
	e("c", entry.NewDate(2025, 3, 1), entry.Revenus, "salaire", "3000", "Mars"),
	e("d", entry.NewDate(2024, 12, 31), entry.DepensesVariables, "courses", "50", "Réveillon"),
	e("e", entry.NewDate(2025, 2, 15), entry.Epargne, "livret_a", "50.00", ""),
}

func ids(entries []entry.Entry) []string {
	result := make([]string, 0, len(entries))
	for _, en := range entries {
		result = append(result, en.Id)
	}
	return result
}

func query(mutate func(q *Query)) Query {
	q := Query{}
	if mutate != nil {
		mutate(&q)
	}
	q.Defaults()
	return q
}

func TestQuery_Defaults(t *testing.T) {
	q := query(nil)

	assert.Equal(t, Query{FilterType: FilterAll, SortBy: SortByDate, SortOrder: Desc, Page: 1, PageSize: 20}, q)
	assert.NoError(t, q.Validate())
}

func TestQuery_Validate(t *testing.T) {
	assert.ErrorIs(t, query(func(q *Query) { q.FilterType = "voyages" }).Validate(), entry.ErrValidation)
	assert.ErrorIs(t, query(func(q *Query) { q.SortBy = "category" }).Validate(), entry.ErrValidation)
	assert.ErrorIs(t, query(func(q *Query) { q.SortOrder = "up" }).Validate(), entry.ErrValidation)
	assert.ErrorIs(t, query(func(q *Query) { q.Page = -1 }).Validate(), entry.ErrValidation)
	assert.NoError(t, query(func(q *Query) { q.FilterType = "epargne" }).Validate())
}

func TestRun(t *testing.T) {
	t.Run("should filter year then sort by date descending keeping ties stable", func(t *testing.T) {
		page := Run(ledger, query(func(q *Query) { q.Year = 2025 }))

		assert.Equal(t, []string{"c", "e", "a", "b"}, ids(page.Items))
		assert.Equal(t, 4, page.TotalItems)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("should sort by amount ascending keeping ties stable", func(t *testing.T) {
		page := Run(ledger, query(func(q *Query) {
			q.SortBy = SortByAmount
			q.SortOrder = Asc
		}))

		assert.Equal(t, []string{"a", "d", "e", "b", "c"}, ids(page.Items))
	})

	t.Run("should sort by amount descending keeping ties stable", func(t *testing.T) {
		page := Run(ledger, query(func(q *Query) { q.SortBy = SortByAmount }))

		assert.Equal(t, []string{"c", "b", "a", "d", "e"}, ids(page.Items))
	})

	t.Run("should filter by type", func(t *testing.T) {
		page := Run(ledger, query(func(q *Query) { q.FilterType = string(entry.DepensesVariables) }))

		assert.Equal(t, []string{"a", "d"}, ids(page.Items))
	})

	t.Run("should paginate and return empty page past the end", func(t *testing.T) {
		pages := make([]Page, 0)
		for p := 1; p <= 4; p++ {
			pages = append(pages, Run(ledger, query(func(q *Query) {
				q.Page = p
				q.PageSize = 2
			})))
		}

		assert.Equal(t, []string{"c", "e"}, ids(pages[0].Items))
		assert.Equal(t, []string{"a", "b"}, ids(pages[1].Items))
		assert.Equal(t, []string{"d"}, ids(pages[2].Items))
		assert.NotNil(t, pages[3].Items)
		assert.Empty(t, pages[3].Items)
		for _, page := range pages {
			assert.Equal(t, 5, page.TotalItems)
			assert.Equal(t, 3, page.TotalPages)
		}
	})

	t.Run("should return empty page for huge page number", func(t *testing.T) {
		var page Page
		assert.NotPanics(t, func() {
			page = Run(ledger, query(func(q *Query) {
				q.Page = 1 << 62
				q.PageSize = 50
			}))
		})

		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 5, page.TotalItems)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("should hold everything in one page for max page size", func(t *testing.T) {
		var page Page
		assert.NotPanics(t, func() {
			page = Run(ledger, query(func(q *Query) { q.PageSize = math.MaxInt }))
		})

		assert.Len(t, page.Items, 5)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("should handle empty ledger", func(t *testing.T) {
		page := Run(nil, query(nil))

		assert.NotNil(t, page.Items)
		assert.Equal(t, 0, page.TotalItems)
		assert.Equal(t, 0, page.TotalPages)
	})

	t.Run("should not mutate input", func(t *testing.T) {
		before := slices.Clone(ledger)

		Run(ledger, query(func(q *Query) { q.SortBy = SortByAmount }))

		assert.Equal(t, before, ledger)
	})
}

func TestExportCSV(t *testing.T) {
	t.Run("should render header and quoted descriptions", func(t *testing.T) {
		// given
		entries := []entry.Entry{
			e("x", entry.NewDate(2025, 4, 2), entry.DepensesVariables, "restaurants", "42.5", `Dîner "chez Paul", Lyon`),
			e("y", entry.NewDate(2025, 4, 3), entry.DepensesFixes, "electricite", "61.20", ""),
		}

		// when
		out := ExportCSV(entries, catalog)

		// then
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "Date,Type,Catégorie,Montant,Description", lines[0])
		assert.Equal(t, `2025-04-02,depenses_variables,Restaurants,42.5,"Dîner ""chez Paul"", Lyon"`, lines[1])
		assert.Equal(t, `2025-04-03,depenses_fixes,Électricité,61.2,"Électricité"`, lines[2])
	})

	t.Run("should be readable by a csv parser", func(t *testing.T) {
		out := ExportCSV(ledger, catalog)

		records, err := csv.NewReader(strings.NewReader(out)).ReadAll()

		require.NoError(t, err)
		require.Len(t, records, len(ledger)+1)
		for i, record := range records[1:] {
			assert.Equal(t, ledger[i].DisplayDescription(catalog), record[4])
			assert.True(t, decimal.RequireFromString(record[3]).Equal(ledger[i].Amount))
		}
	})

	t.Run("should quote labels containing separators", func(t *testing.T) {
		custom := entry.NewCatalog([]entry.Category{{Key: "misc", Label: "Misc, other", Type: entry.DepensesVariables}})
		entries := []entry.Entry{e("z", entry.NewDate(2025, 1, 1), entry.DepensesVariables, "misc", "1", "x")}

		records, err := csv.NewReader(strings.NewReader(ExportCSV(entries, custom))).ReadAll()

		require.NoError(t, err)
		assert.Equal(t, "Misc, other", records[1][2])
	})

	t.Run("should render header only for empty ledger", func(t *testing.T) {
		assert.Equal(t, "Date,Type,Catégorie,Montant,Description", ExportCSV(nil, catalog))
	})
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "budget_export_2025-07-04.csv", ExportFilename(time.Date(2025, 7, 4, 23, 59, 0, 0, time.UTC)))
}
