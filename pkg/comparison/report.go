package comparison

import (
	"cmp"
	"slices"

	"github.com/klokku/budgettracker/pkg/entry"
)

type Mode string

const (
	ByType     Mode = "type"
	ByCategory Mode = "category"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ByType, "":
		return ByType, nil
	case ByCategory:
		return ByCategory, nil
	default:
		return "", entry.NewValidationError("mode", "expected type or category, got "+s)
	}
}

type ReportRow struct {
	Key   string
	Label string
	Diff  Diff
}

type Report struct {
	Mode    Mode
	Period1 entry.Period
	Period2 entry.Period
	Rows    []ReportRow
}

// BuildTypeReport returns one row per entry type, in canonical order.
func BuildTypeReport(c TypeComparison) []ReportRow {
	rows := make([]ReportRow, 0, len(entry.AllTypes))
	for _, t := range entry.AllTypes {
		rows = append(rows, ReportRow{
			Key:   string(t),
			Label: t.Label(),
			Diff:  DiffAndClassify(c.Period1[t], c.Period2[t], RuleForType(t)),
		})
	}
	return rows
}

// BuildCategoryReport returns one row per compared category, sorted by label.
func BuildCategoryReport(c CategoryComparison, policy CategoryRulePolicy, catalog *entry.Catalog) []ReportRow {
	rows := make([]ReportRow, 0, len(c.Period1))
	for category, value1 := range c.Period1 {
		rows = append(rows, ReportRow{
			Key:   category,
			Label: catalog.Label(category),
			Diff:  DiffAndClassify(value1, c.Period2[category], policy(category)),
		})
	}
	slices.SortFunc(rows, func(a, b ReportRow) int {
		if c := cmp.Compare(a.Label, b.Label); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return rows
}
