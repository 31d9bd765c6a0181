package table

import (
	"context"
	"fmt"

	"github.com/klokku/budgettracker/pkg/entry"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Query(ctx context.Context, q Query) (Page, error)
	// Export renders the filtered and sorted ledger as CSV, without pagination.
	Export(ctx context.Context, q Query) (string, error)
	Catalog() *entry.Catalog
}

type ServiceImpl struct {
	entryService    entry.Service
	defaultPageSize int
}

func NewService(entryService entry.Service, defaultPageSize int) *ServiceImpl {
	if defaultPageSize < 1 {
		defaultPageSize = DefaultPageSize
	}
	return &ServiceImpl{entryService: entryService, defaultPageSize: defaultPageSize}
}

func (s *ServiceImpl) Catalog() *entry.Catalog {
	return s.entryService.Catalog()
}

func (s *ServiceImpl) Query(ctx context.Context, q Query) (Page, error) {
	entries, err := s.prepare(ctx, &q)
	if err != nil {
		return Page{}, err
	}
	page := Run(entries, q)
	log.Debugf("Table page %d/%d with %d of %d entries", q.Page, page.TotalPages, len(page.Items), page.TotalItems)
	return page, nil
}

func (s *ServiceImpl) Export(ctx context.Context, q Query) (string, error) {
	entries, err := s.prepare(ctx, &q)
	if err != nil {
		return "", err
	}
	filtered := Filter(entries, q)
	Sort(filtered, q.SortBy, q.SortOrder)
	return ExportCSV(filtered, s.entryService.Catalog()), nil
}

func (s *ServiceImpl) prepare(ctx context.Context, q *Query) ([]entry.Entry, error) {
	if q.PageSize == 0 {
		q.PageSize = s.defaultPageSize
	}
	q.Defaults()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	entries, err := s.entryService.Ledger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return entries, nil
}
