package stats

import (
	"context"
	"fmt"

	"github.com/klokku/budgettracker/internal/utils"
	"github.com/klokku/budgettracker/pkg/entry"
	log "github.com/sirupsen/logrus"
)

type StatsService interface {
	Monthly(ctx context.Context, year int) ([]MonthlyBucket, error)
	Yearly(ctx context.Context, years []int) ([]YearlyRow, error)
	Categories(ctx context.Context, year int, expensesOnly bool, limit int) ([]CategoryRow, error)
	// Years returns the ledger years, or the current year alone when the ledger is empty.
	Years(ctx context.Context) ([]int, error)
}

type StatsServiceImpl struct {
	entryService entry.Service
	clock        utils.Clock
}

func NewStatsServiceImpl(entryService entry.Service, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{entryService: entryService, clock: clock}
}

func (s *StatsServiceImpl) Monthly(ctx context.Context, year int) ([]MonthlyBucket, error) {
	entries, err := s.ledger(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyRollup(entries, year), nil
}

func (s *StatsServiceImpl) Yearly(ctx context.Context, years []int) ([]YearlyRow, error) {
	entries, err := s.ledger(ctx)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		years = AvailableYears(entries)
	}
	return YearlyRollup(entries, years), nil
}

func (s *StatsServiceImpl) Categories(ctx context.Context, year int, expensesOnly bool, limit int) ([]CategoryRow, error) {
	entries, err := s.ledger(ctx)
	if err != nil {
		return nil, err
	}
	rows := CategoryBreakdown(entries, year, s.entryService.Catalog())
	if expensesOnly {
		return TopExpenses(rows, limit), nil
	}
	return rows, nil
}

func (s *StatsServiceImpl) Years(ctx context.Context) ([]int, error) {
	entries, err := s.ledger(ctx)
	if err != nil {
		return nil, err
	}
	years := AvailableYears(entries)
	if len(years) == 0 {
		return []int{s.clock.Now().Year()}, nil
	}
	return years, nil
}

func (s *StatsServiceImpl) ledger(ctx context.Context) ([]entry.Entry, error) {
	entries, err := s.entryService.Ledger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	log.Tracef("Computing stats over %d entries", len(entries))
	return entries, nil
}
