package table

import (
	"strings"
	"time"

	"github.com/klokku/budgettracker/pkg/entry"
)

var csvHeader = []string{"Date", "Type", "Catégorie", "Montant", "Description"}

// ExportCSV renders one line per entry after the header, lines separated by \n.
// The description column is always quoted.
func ExportCSV(entries []entry.Entry, catalog *entry.Catalog) string {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, e := range entries {
		fields := []string{
			e.Date.Format(entry.DateLayout),
			string(e.Type),
			quoteIfNeeded(catalog.Label(e.Category)),
			e.Amount.String(),
			quote(e.DisplayDescription(catalog)),
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

func ExportFilename(now time.Time) string {
	return "budget_export_" + now.Format(entry.DateLayout) + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}
