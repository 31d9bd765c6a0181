package app

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/budgettracker/internal/config"
	"github.com/klokku/budgettracker/internal/event_bus"
	"github.com/klokku/budgettracker/internal/utils"
	"github.com/klokku/budgettracker/pkg/budget_limit"
	"github.com/klokku/budgettracker/pkg/comparison"
	"github.com/klokku/budgettracker/pkg/entry"
	"github.com/klokku/budgettracker/pkg/recurring"
	"github.com/klokku/budgettracker/pkg/stats"
	"github.com/klokku/budgettracker/pkg/table"
	log "github.com/sirupsen/logrus"
)

// Repositories holds one store per domain, all backed by the same database.
type Repositories struct {
	Entry     entry.Repository
	Recurring recurring.Repository
	Limits    budget_limit.Repository
}

func PostgresRepositories(db *pgxpool.Pool) Repositories {
	return Repositories{
		Entry:     entry.NewRepository(db),
		Recurring: recurring.NewRepository(db),
		Limits:    budget_limit.NewRepository(db),
	}
}

func SqliteRepositories(db *sql.DB) Repositories {
	return Repositories{
		Entry:     entry.NewSqliteRepository(db),
		Recurring: recurring.NewSqliteRepository(db),
		Limits:    budget_limit.NewSqliteRepository(db),
	}
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Catalog  *entry.Catalog
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	EntryService *entry.ServiceImpl
	EntryHandler *entry.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	ComparisonService *comparison.ServiceImpl
	ComparisonHandler *comparison.Handler

	TableService *table.ServiceImpl
	TableHandler *table.Handler

	RecurringService *recurring.ServiceImpl
	RecurringHandler *recurring.Handler

	LimitService *budget_limit.ServiceImpl
	LimitHandler *budget_limit.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(repos Repositories, cfg config.Application, clock utils.Clock) (*Dependencies, error) {
	deps := &Dependencies{
		Catalog:  entry.DefaultCatalog(),
		EventBus: event_bus.NewEventBus(),
		Clock:    clock,
	}
	subscribeLedgerLog(deps.EventBus)

	deps.EntryService = entry.NewService(repos.Entry, deps.Catalog, deps.EventBus)
	deps.EntryHandler = entry.NewHandler(deps.EntryService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.EntryService, deps.Clock)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer, deps.Clock)

	policy, ok := comparison.PolicyByName(cfg.Comparison.CategoryRule, deps.Catalog)
	if !ok {
		return nil, fmt.Errorf("unknown comparison category rule %q", cfg.Comparison.CategoryRule)
	}
	deps.ComparisonService = comparison.NewService(deps.EntryService, policy)
	deps.ComparisonHandler = comparison.NewHandler(deps.ComparisonService)

	deps.TableService = table.NewService(deps.EntryService, cfg.Table.PageSize)
	deps.TableHandler = table.NewHandler(deps.TableService, deps.Clock)

	deps.RecurringService = recurring.NewService(repos.Recurring, deps.EntryService, deps.Clock)
	deps.RecurringHandler = recurring.NewHandler(deps.RecurringService, deps.Catalog)

	deps.LimitService = budget_limit.NewService(repos.Limits, deps.EntryService, deps.Clock)
	deps.LimitHandler = budget_limit.NewHandler(deps.LimitService, deps.Catalog)

	return deps, nil
}

func subscribeLedgerLog(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.EntryCreated](bus, event_bus.EntryCreatedEvent, func(e event_bus.EventT[event_bus.EntryCreated]) error {
		log.Debugf("entry %s (%s/%s) stored for %s", e.Data.Id, e.Data.Type, e.Data.Category, e.Data.OwnerId)
		return nil
	})
	event_bus.SubscribeTyped[event_bus.EntryDeleted](bus, event_bus.EntryDeletedEvent, func(e event_bus.EventT[event_bus.EntryDeleted]) error {
		log.Debugf("entry %s deleted for %s", e.Data.Id, e.Data.OwnerId)
		return nil
	})
}
