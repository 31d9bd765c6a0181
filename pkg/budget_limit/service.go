package budget_limit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klokku/budgettracker/internal/utils"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/klokku/budgettracker/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Overview is the state of every configured limit for the current month.
type Overview struct {
	Month      time.Time
	Categories []CategoryProgress
	Epargne    Progress
	// Investissements is the long-term progress, like Epargne.
	Investissements Progress
}

type Service interface {
	GetConfig(ctx context.Context) (Config, error)
	SaveConfig(ctx context.Context, cfg Config) (Config, error)
	Overview(ctx context.Context) (Overview, error)
}

type ServiceImpl struct {
	repo         Repository
	entryService entry.Service
	clock        utils.Clock
}

func NewService(repo Repository, entryService entry.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, entryService: entryService, clock: clock}
}

func (s *ServiceImpl) GetConfig(ctx context.Context) (Config, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.load(ctx, ownerId)
}

func (s *ServiceImpl) SaveConfig(ctx context.Context, cfg Config) (Config, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get current user: %w", err)
	}
	cfg = cfg.normalized()
	if err := cfg.Validate(s.entryService.Catalog()); err != nil {
		return Config{}, err
	}
	if err := s.repo.Save(ctx, ownerId, cfg); err != nil {
		return Config{}, err
	}
	log.Infof("Saved budget limits for %s", ownerId)
	return cfg, nil
}

func (s *ServiceImpl) Overview(ctx context.Context) (Overview, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get current user: %w", err)
	}

	var (
		ledger []entry.Entry
		cfg    Config
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ledger, err = s.entryService.Ledger(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cfg, err = s.load(gctx, ownerId)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	now := s.clock.Now()
	year, month, _ := now.Date()
	return Overview{
		Month:           entry.NewDate(year, month, 1),
		Categories:      AllProgress(ledger, cfg, s.entryService.Catalog(), now),
		Epargne:         LongTermProgress(ledger, cfg, entry.Epargne),
		Investissements: LongTermProgress(ledger, cfg, entry.Investissements),
	}, nil
}

// load degrades to an empty config when the store is unreachable.
func (s *ServiceImpl) load(ctx context.Context, ownerId string) (Config, error) {
	cfg, err := s.repo.Load(ctx, ownerId)
	if err != nil {
		if errors.Is(err, entry.ErrNotAvailable) {
			log.Warnf("budget limits of %s not available, continuing without: %v", ownerId, err)
			return EmptyConfig(), nil
		}
		return Config{}, err
	}
	return cfg, nil
}
