package entry

import (
	"context"
	"slices"
)

type RepositoryStub struct {
	entries     map[string][]Entry
	unavailable bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{entries: map[string][]Entry{}}
}

func (s *RepositoryStub) LoadEntries(ctx context.Context, ownerId string) ([]Entry, error) {
	if s.unavailable {
		return nil, ErrNotAvailable
	}
	return slices.Clone(s.entries[ownerId]), nil
}

func (s *RepositoryStub) SaveEntry(ctx context.Context, ownerId string, entry Entry) (Entry, error) {
	if s.unavailable {
		return Entry{}, ErrNotAvailable
	}
	for idx, existing := range s.entries[ownerId] {
		if existing.Id == entry.Id {
			s.entries[ownerId][idx] = entry
			return entry, nil
		}
	}
	s.entries[ownerId] = append(s.entries[ownerId], entry)
	return entry, nil
}

func (s *RepositoryStub) DeleteEntry(ctx context.Context, ownerId string, id string) (bool, error) {
	if s.unavailable {
		return false, ErrNotAvailable
	}
	for idx, existing := range s.entries[ownerId] {
		if existing.Id == id {
			s.entries[ownerId] = slices.Delete(s.entries[ownerId], idx, idx+1)
			return true, nil
		}
	}
	return false, nil
}

// SetUnavailable makes every call fail with ErrNotAvailable.
func (s *RepositoryStub) SetUnavailable(unavailable bool) {
	s.unavailable = unavailable
}

func (s *RepositoryStub) Cleanup() {
	s.entries = map[string][]Entry{}
	s.unavailable = false
}
