package budget_limit

import (
	"context"
	"maps"

	"github.com/klokku/budgettracker/pkg/entry"
)

type RepositoryStub struct {
	configs     map[string]Config
	unavailable bool
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{configs: map[string]Config{}}
}

func (s *RepositoryStub) Load(ctx context.Context, ownerId string) (Config, error) {
	if s.unavailable {
		return Config{}, entry.ErrNotAvailable
	}
	cfg, ok := s.configs[ownerId]
	if !ok {
		return EmptyConfig(), nil
	}
	return clone(cfg), nil
}

func (s *RepositoryStub) Save(ctx context.Context, ownerId string, cfg Config) error {
	if s.unavailable {
		return entry.ErrNotAvailable
	}
	s.configs[ownerId] = clone(cfg)
	return nil
}

func (s *RepositoryStub) SetUnavailable(unavailable bool) {
	s.unavailable = unavailable
}

func (s *RepositoryStub) Cleanup() {
	s.configs = map[string]Config{}
	s.unavailable = false
}

func clone(cfg Config) Config {
	cfg = cfg.normalized()
	cfg.Categories = maps.Clone(cfg.Categories)
	cfg.Epargne = maps.Clone(cfg.Epargne)
	cfg.Investissements = maps.Clone(cfg.Investissements)
	return cfg
}
