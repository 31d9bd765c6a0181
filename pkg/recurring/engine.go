package recurring

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/budgettracker/pkg/entry"
)

const automaticSuffix = " (automatique)"

// MaterializeCurrentMonth returns the entries the rules produce for the month of now.
//
// Nothing is produced once any recurring entry exists in that month, even when only some rules
// landed. Rules are assumed valid. An entry is dated on the rule's day, clamped to the month
// length, or on today when that day is still ahead.
func MaterializeCurrentMonth(entries []entry.Entry, rules []Rule, now time.Time, catalog *entry.Catalog) []entry.Entry {
	year, month, today := now.Date()
	for _, e := range entries {
		if e.IsRecurring && e.SameMonth(year, month) {
			return []entry.Entry{}
		}
	}

	generated := make([]entry.Entry, 0, len(rules))
	for _, rule := range rules {
		day := min(rule.DayOfMonth, lastDayOfMonth(year, month), today)
		generated = append(generated, entry.Entry{
			Id:          EntryId(rule.Id, year, month),
			Date:        entry.NewDate(year, month, day),
			Type:        entry.DepensesFixes,
			Category:    rule.Category,
			Amount:      rule.Amount,
			Description: catalog.Label(rule.Category) + automaticSuffix,
			IsRecurring: true,
		})
	}
	return generated
}

// EntryId derives the id of the entry a rule produces for one month. The same rule and month
// always give the same id.
func EntryId(ruleId string, year int, month time.Month) string {
	name := fmt.Sprintf("%s:%04d-%02d", ruleId, year, int(month))
	return uuid.NewSHA1(RecurringNamespace, []byte(name)).String()
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
