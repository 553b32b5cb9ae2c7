// Package server initializes and runs the central server: storage, the
// bootstrap root user, the station-facing TCP endpoint, the periodic
// station sweep, and the optional metrics listener.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/config"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/jobs"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/metrics"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/repositories/repomanager"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/service"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/server/tcp"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// jobSweepInterval is how often the station sweep runs; the idle timeout
// itself comes from config.
const jobSweepInterval = time.Minute

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	svc    *service.RentalService
	cron   *cron.Cron
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var db *sql.DB
	var repos repomanager.RepositoryManager

	if cfg.DatabaseDSN != "" {
		pg := repomanager.NewPostgresRepositoryManager()

		var err error
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		repos = pg
	} else {
		logger.Warn(ctx, "no database DSN configured, using in-memory storage")
		repos = repomanager.NewInMemoryRepositoryManager()
	}

	svc := service.NewRentalService(db, repos)

	if err := svc.EnsureRootUser(ctx, cfg.RootUsername, cfg.RootPassword); err != nil {
		return nil, fmt.Errorf("root user bootstrap error: %w", err)
	}

	return &App{config: cfg, logger: logger, db: db, svc: svc, cron: cron.New()}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startTCPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := tcp.NewServer(app.config.EndpointAddr, app.logger, app.svc,
		app.config.SecretKey, app.config.SessionTokenValidityDuration)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startJobs(ctx context.Context) {
	app.cron.Schedule(cron.Every(jobSweepInterval),
		jobs.NewStationSweepJob(app.svc, app.config.StationIdleTimeout, app.logger))
	app.cron.Start()

	go func() {
		<-ctx.Done()
		app.cron.Stop()
	}()
}

func (app *App) startMetrics(ctx context.Context) {
	if app.config.MetricsAddr == "" {
		return
	}
	go func() {
		app.logger.Info(ctx, "Starting metrics endpoint", "address", app.config.MetricsAddr)
		if err := metrics.Serve(app.config.MetricsAddr); err != nil {
			app.logger.Error(ctx, "metrics endpoint failed", "error", err)
		}
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)
	app.startJobs(ctx)
	app.startMetrics(ctx)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startTCPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		_ = app.db.Close()
	}
}
