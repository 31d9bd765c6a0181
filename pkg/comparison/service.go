package comparison

import (
	"context"
	"fmt"

	"github.com/klokku/budgettracker/pkg/entry"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Compare(ctx context.Context, mode Mode, p1, p2 entry.Period) (Report, error)
}

type ServiceImpl struct {
	entryService entry.Service
	policy       CategoryRulePolicy
}

func NewService(entryService entry.Service, policy CategoryRulePolicy) *ServiceImpl {
	if policy == nil {
		policy = ReferenceCategoryPolicy
	}
	return &ServiceImpl{entryService: entryService, policy: policy}
}

func (s *ServiceImpl) Compare(ctx context.Context, mode Mode, p1, p2 entry.Period) (Report, error) {
	if err := p1.Validate(); err != nil {
		return Report{}, err
	}
	if err := p2.Validate(); err != nil {
		return Report{}, err
	}
	entries, err := s.entryService.Ledger(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load ledger: %w", err)
	}
	log.Debugf("Comparing %s with %s by %s over %d entries", p1, p2, mode, len(entries))

	report := Report{Mode: mode, Period1: p1, Period2: p2}
	switch mode {
	case ByCategory:
		report.Rows = BuildCategoryReport(CompareByCategory(entries, p1, p2), s.policy, s.entryService.Catalog())
	default:
		report.Mode = ByType
		report.Rows = BuildTypeReport(CompareByType(entries, p1, p2))
	}
	return report, nil
}
