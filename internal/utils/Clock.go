package utils

import "time"

// Clock is the source of "now" for everything that depends on the current day.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in Location, or in local time when Location is nil.
type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(timezone string) (*SystemClock, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &SystemClock{Location: location}, nil
}

func (s SystemClock) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
