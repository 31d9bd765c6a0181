package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/klokku/budgettracker/internal/utils"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/klokku/budgettracker/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	GetRules(ctx context.Context) ([]Rule, error)
	// SaveRules validates and replaces the rule set. Rules without id get a new one.
	SaveRules(ctx context.Context, rules []Rule) ([]Rule, error)
	// MaterializeCurrentMonth stores the entries the rules produce for the current month and
	// returns them. It returns nothing once the month has recurring entries.
	MaterializeCurrentMonth(ctx context.Context) ([]entry.Entry, error)
}

type ServiceImpl struct {
	repo         Repository
	entryService entry.Service
	clock        utils.Clock
}

func NewService(repo Repository, entryService entry.Service, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, entryService: entryService, clock: clock}
}

func (s *ServiceImpl) GetRules(ctx context.Context) ([]Rule, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.loadRules(ctx, ownerId)
}

func (s *ServiceImpl) SaveRules(ctx context.Context, rules []Rule) ([]Rule, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	toSave := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Id == "" {
			rule.Id = uuid.NewString()
		}
		toSave = append(toSave, rule)
	}
	if err := ValidateRules(toSave, s.entryService.Catalog()); err != nil {
		return nil, err
	}
	if err := s.repo.SaveRules(ctx, ownerId, toSave); err != nil {
		return nil, err
	}
	log.Infof("Saved %d recurring rules for %s", len(toSave), ownerId)
	return toSave, nil
}

func (s *ServiceImpl) MaterializeCurrentMonth(ctx context.Context) ([]entry.Entry, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	var (
		ledger []entry.Entry
		rules  []Rule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ledger, err = s.entryService.Ledger(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = s.loadRules(gctx, ownerId)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	generated := MaterializeCurrentMonth(ledger, rules, now, s.entryService.Catalog())
	if len(generated) == 0 {
		log.Debugf("No recurring entries to materialize for %s in %s", ownerId, now.Format("2006-01"))
		return generated, nil
	}

	stored := make([]entry.Entry, 0, len(generated))
	var errs []error
	for _, e := range generated {
		saved, err := s.entryService.Store(ctx, e)
		if err != nil {
			log.Errorf("failed to store recurring entry %s (%s): %v", e.Id, e.Category, err)
			errs = append(errs, err)
			continue
		}
		stored = append(stored, saved)
	}
	log.Infof("Materialized %d of %d recurring entries for %s", len(stored), len(generated), ownerId)
	if len(errs) > 0 {
		return stored, fmt.Errorf("failed to store %d recurring entries: %w", len(errs), errors.Join(errs...))
	}
	return stored, nil
}

// loadRules degrades to no rules when the store is unreachable.
func (s *ServiceImpl) loadRules(ctx context.Context, ownerId string) ([]Rule, error) {
	rules, err := s.repo.LoadRules(ctx, ownerId)
	if err != nil {
		if errors.Is(err, entry.ErrNotAvailable) {
			log.Warnf("recurring rules of %s not available, continuing without: %v", ownerId, err)
			return []Rule{}, nil
		}
		return nil, err
	}
	return rules, nil
}
