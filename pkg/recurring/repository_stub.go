package recurring

import (
	"context"
	"slices"

	"github.com/klokku/budgettracker/pkg/entry"
)

type RepositoryStub struct {
	rules       map[string][]Rule
	unavailable bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{rules: map[string][]Rule{}}
}

func (s *RepositoryStub) LoadRules(ctx context.Context, ownerId string) ([]Rule, error) {
	if s.unavailable {
		return nil, entry.ErrNotAvailable
	}
	rules := slices.Clone(s.rules[ownerId])
	if rules == nil {
		rules = []Rule{}
	}
	return rules, nil
}

func (s *RepositoryStub) SaveRules(ctx context.Context, ownerId string, rules []Rule) error {
	if s.unavailable {
		return entry.ErrNotAvailable
	}
	s.rules[ownerId] = slices.Clone(rules)
	return nil
}

func (s *RepositoryStub) SetUnavailable(unavailable bool) {
	s.unavailable = unavailable
}

func (s *RepositoryStub) Cleanup() {
	s.rules = map[string][]Rule{}
	s.unavailable = false
}
