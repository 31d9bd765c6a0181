package table

import (
	"slices"

	"github.com/klokku/budgettracker/pkg/entry"
)

// FilterAll disables the type filter.
const FilterAll = "all"

type SortBy string

const (
	SortByDate   SortBy = "date"
	SortByAmount SortBy = "amount"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

const DefaultPageSize = 20

type Query struct {
	// Year keeps entries of one year. Zero keeps every year.
	Year       int
	FilterType string
	SortBy     SortBy
	SortOrder  SortOrder
	Page       int
	PageSize   int
}

type Page struct {
	Items      []entry.Entry
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Defaults fills in the values a caller left empty.
func (q *Query) Defaults() {
	if q.FilterType == "" {
		q.FilterType = FilterAll
	}
	if q.SortBy == "" {
		q.SortBy = SortByDate
	}
	if q.SortOrder == "" {
		q.SortOrder = Desc
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
}

func (q Query) Validate() error {
	if q.FilterType != FilterAll && !entry.EntryType(q.FilterType).IsValid() {
		return entry.NewValidationError("type", "unknown entry type "+q.FilterType)
	}
	if q.SortBy != SortByDate && q.SortBy != SortByAmount {
		return entry.NewValidationError("sortBy", "expected date or amount, got "+string(q.SortBy))
	}
	if q.SortOrder != Asc && q.SortOrder != Desc {
		return entry.NewValidationError("sortOrder", "expected asc or desc, got "+string(q.SortOrder))
	}
	if q.Page < 1 {
		return entry.NewValidationError("page", "page must be at least 1")
	}
	if q.PageSize < 1 {
		return entry.NewValidationError("pageSize", "page size must be at least 1")
	}
	return nil
}

// Filter applies the year and type filters, keeping ledger order.
func Filter(entries []entry.Entry, q Query) []entry.Entry {
	filtered := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if q.Year != 0 && e.Date.Year() != q.Year {
			continue
		}
		if q.FilterType != "" && q.FilterType != FilterAll && string(e.Type) != q.FilterType {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// Sort orders the entries in place. Entries with equal keys keep their relative order.
func Sort(entries []entry.Entry, by SortBy, order SortOrder) {
	slices.SortStableFunc(entries, func(a, b entry.Entry) int {
		var c int
		if by == SortByAmount {
			c = a.Amount.Cmp(b.Amount)
		} else {
			c = a.Date.Compare(b.Date)
		}
		if order == Desc {
			return -c
		}
		return c
	})
}

// Run filters, sorts and paginates, in that order. The query is expected to be defaulted and
// valid. A page past the end yields no items. The input slice is left untouched.
func Run(entries []entry.Entry, q Query) Page {
	filtered := Filter(entries, q)
	Sort(filtered, q.SortBy, q.SortOrder)

	total := len(filtered)
	pages := totalPages(total, q.PageSize)
	start, end := total, total
	if q.Page-1 < pages {
		start = (q.Page - 1) * q.PageSize
		end = start + min(q.PageSize, total-start)
	}
	items := filtered[start:end]
	if items == nil {
		items = []entry.Entry{}
	}

	return Page{
		Items:      items,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

func totalPages(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}
