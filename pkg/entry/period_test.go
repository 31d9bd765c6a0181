package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_Contains(t *testing.T) {
	march := NewDate(2025, time.March, 31)
	april := NewDate(2025, time.April, 1)
	previousYear := NewDate(2024, time.March, 10)

	tests := []struct {
		name   string
		period Period
		date   time.Time
		want   bool
	}{
		{"year contains any month", YearPeriod(2025), april, true},
		{"year rejects other year", YearPeriod(2025), previousYear, false},
		{"month match", MonthPeriod(2025, time.March), march, true},
		{"month mismatch", MonthPeriod(2025, time.March), april, false},
		{"month in other year", MonthPeriod(2025, time.March), previousYear, false},
		{"first quarter contains march", QuarterPeriod(2025, 1), march, true},
		{"first quarter excludes april", QuarterPeriod(2025, 1), april, false},
		{"second quarter contains april", QuarterPeriod(2025, 2), april, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Contains(tt.date))
		})
	}
}

func TestQuarterOf(t *testing.T) {
	expected := []int{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}
	for month := 1; month <= 12; month++ {
		assert.Equal(t, expected[month-1], QuarterOf(month), "month %d", month)
	}
}

func TestPeriod_Validate(t *testing.T) {
	assert.NoError(t, YearPeriod(2025).Validate())
	assert.ErrorIs(t, Period{Year: 2025, Month: 13}.Validate(), ErrValidation)
	assert.ErrorIs(t, Period{Year: 2025, Quarter: 5}.Validate(), ErrValidation)
	assert.ErrorIs(t, Period{Year: 2025, Month: 1, Quarter: 1}.Validate(), ErrValidation)
}

func TestParsePeriod(t *testing.T) {
	t.Run("should parse and format every shape", func(t *testing.T) {
		for _, s := range []string{"2025", "2025-03", "2025-Q2"} {
			p, err := ParsePeriod(s)
			require.NoError(t, err)
			assert.Equal(t, s, p.String())
		}
	})

	t.Run("should accept lowercase quarter", func(t *testing.T) {
		p, err := ParsePeriod("2024-q4")

		require.NoError(t, err)
		assert.Equal(t, QuarterPeriod(2024, 4), p)
	})

	t.Run("should reject malformed periods", func(t *testing.T) {
		for _, s := range []string{"", "abc", "2025-13", "2025-Q0", "2025-Q", "2025-03-01", "2025-00"} {
			_, err := ParsePeriod(s)
			assert.ErrorIs(t, err, ErrValidation, s)
		}
	})
}
