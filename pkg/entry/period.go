package entry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a calendar year, optionally narrowed to one month (1-12) or one quarter (1-4).
// Zero Month and Quarter mean the whole year.
type Period struct {
	Year    int
	Month   int
	Quarter int
}

func YearPeriod(year int) Period {
	return Period{Year: year}
}

func MonthPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: int(month)}
}

func QuarterPeriod(year int, quarter int) Period {
	return Period{Year: year, Quarter: quarter}
}

func (p Period) Validate() error {
	if p.Month != 0 && p.Quarter != 0 {
		return NewValidationError("period", "month and quarter are mutually exclusive")
	}
	if p.Month < 0 || p.Month > 12 {
		return NewValidationError("period", fmt.Sprintf("month %d out of range", p.Month))
	}
	if p.Quarter < 0 || p.Quarter > 4 {
		return NewValidationError("period", fmt.Sprintf("quarter %d out of range", p.Quarter))
	}
	return nil
}

// Contains reports whether the date belongs to the period.
func (p Period) Contains(date time.Time) bool {
	if date.Year() != p.Year {
		return false
	}
	month := int(date.Month())
	switch {
	case p.Month != 0:
		return month == p.Month
	case p.Quarter != 0:
		return QuarterOf(month) == p.Quarter
	default:
		return true
	}
}

// QuarterOf maps a 1-based month to its quarter: 1-3 -> 1, 4-6 -> 2, 7-9 -> 3, 10-12 -> 4.
func QuarterOf(month int) int {
	return (month-1)/3 + 1
}

// String formats the period as "2025", "2025-03" or "2025-Q2".
func (p Period) String() string {
	switch {
	case p.Month != 0:
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	case p.Quarter != 0:
		return fmt.Sprintf("%04d-Q%d", p.Year, p.Quarter)
	default:
		return fmt.Sprintf("%04d", p.Year)
	}
}

// ParsePeriod is the inverse of Period.String.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "-")
	if len(parts) > 2 || parts[0] == "" {
		return Period{}, NewValidationError("period", "invalid period "+s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Period{}, NewValidationError("period", "invalid year in "+s)
	}
	p := Period{Year: year}
	if len(parts) == 2 {
		rest := strings.ToUpper(parts[1])
		if strings.HasPrefix(rest, "Q") {
			p.Quarter, err = strconv.Atoi(rest[1:])
		} else {
			p.Month, err = strconv.Atoi(rest)
		}
		if err != nil {
			return Period{}, NewValidationError("period", "invalid period "+s)
		}
		if p.Month == 0 && p.Quarter == 0 {
			return Period{}, NewValidationError("period", "invalid period "+s)
		}
	}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}
