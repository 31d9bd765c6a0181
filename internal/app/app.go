package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/budgettracker/internal/config"
	"github.com/klokku/budgettracker/internal/database"
	"github.com/klokku/budgettracker/internal/notify"
	"github.com/klokku/budgettracker/internal/utils"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg     config.Application
	router  *mux.Router
	srv     *http.Server
	closers []func() error
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}
	clock, err := utils.NewSystemClock(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	a := &Application{cfg: cfg}

	// DB + migrations
	repos, err := a.openRepositories(cfg.Database)
	if err != nil {
		return nil, err
	}

	// Build dependencies (services, handlers...)
	deps, err := BuildDependencies(repos, cfg, clock)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Amqp.Enabled {
		client, err := notify.NewClient(cfg.Amqp.Url, cfg.Amqp.Exchange, cfg.Amqp.Queue)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		notify.NewNotifier(client).Subscribe(deps.EventBus)
		log.Infof("Forwarding ledger events to exchange %s", cfg.Amqp.Exchange)
	}

	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)

	a.router = r
	a.srv = &http.Server{
		Handler:      r,
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return a, nil
}

func (a *Application) openRepositories(cfg config.Database) (Repositories, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if err := database.Migrate(cfg); err != nil {
			return Repositories{}, err
		}
		db, err := database.Open(cfg)
		if err != nil {
			return Repositories{}, err
		}
		a.closers = append(a.closers, func() error { db.Close(); return nil })
		return PostgresRepositories(db), nil
	case config.DriverSqlite:
		db, err := database.OpenSqlite(cfg)
		if err != nil {
			return Repositories{}, err
		}
		a.closers = append(a.closers, db.Close)
		return SqliteRepositories(db), nil
	}
	return Repositories{}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	defer a.Close()
	log.Infof("Starting server on %s (%s database)", a.srv.Addr, a.cfg.Database.Driver)
	return a.srv.ListenAndServe()
}

// Close releases the database and broker connections.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
