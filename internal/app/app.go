package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-teams/internal/config"
	"github.com/riskibarqy/matchday-teams/internal/domain/allocation"
	"github.com/riskibarqy/matchday-teams/internal/domain/availability"
	"github.com/riskibarqy/matchday-teams/internal/domain/jobscheduler"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
	"github.com/riskibarqy/matchday-teams/internal/infrastructure/audit"
	"github.com/riskibarqy/matchday-teams/internal/infrastructure/notify"
	"github.com/riskibarqy/matchday-teams/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/matchday-teams/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-teams/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday-teams/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/matchday-teams/internal/platform/cache"
	idgen "github.com/riskibarqy/matchday-teams/internal/platform/id"
	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
	"github.com/riskibarqy/matchday-teams/internal/platform/resilience"
	"github.com/riskibarqy/matchday-teams/internal/scheduler"
	"github.com/riskibarqy/matchday-teams/internal/usecase"
)

// App owns every long-lived component of the API process.
type App struct {
	Server *http.Server

	scheduler *scheduler.Scheduler
	notifier  *notify.TeamsPublishedNotifier
	db        *sqlx.DB
	logger    *logging.Logger

	// catchUpDone is closed once the startup catch-up pass returns.
	catchUpDone   chan struct{}
	cancelCatchUp context.CancelFunc
}

type repositories struct {
	players      player.Repository
	availability availability.Repository
	pool         availability.PoolProvider
	teams        teamsheet.Repository
	dispatches   jobscheduler.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	calendar, err := cfg.Calendar()
	if err != nil {
		return nil, fmt.Errorf("build match calendar: %w", err)
	}

	a := &App{logger: logger}
	repos, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		a.closeDB()
		return nil, err
	}

	var notifier usecase.NotificationSink
	if cfg.NotifyEnabled {
		a.notifier, err = newTeamsPublishedNotifier(cfg, repos.dispatches, logger)
		if err != nil {
			a.closeDB()
			return nil, err
		}
		notifier = a.notifier
	}

	generation := usecase.NewGenerationService(
		calendar,
		repos.pool,
		allocation.NewAllocator(nil),
		repos.teams,
		repos.dispatches,
		notifier,
		audit.NewLogSink(logger),
		idgen.NewUUIDGenerator(),
		usecase.GenerationConfig{PersistenceTimeout: cfg.PersistenceTimeout},
		logger.Named("generation"),
	)
	availabilityService := usecase.NewAvailabilityService(
		calendar,
		repos.availability,
		repos.players,
		cfg.MatchWindowWeeks,
		logger.Named("availability"),
	)

	if cfg.SchedulerEnabled {
		catchUpDays := cfg.SchedulerCatchUpDays
		if catchUpDays == 0 {
			catchUpDays = -1
		}
		a.scheduler, err = scheduler.New(calendar, generation, scheduler.Config{CatchUpDays: catchUpDays}, logger)
		if err != nil {
			a.closeDB()
			return nil, fmt.Errorf("build scheduler: %w", err)
		}
	}

	handler := httpapi.NewHandler(generation, availabilityService, repos.dispatches, logger.Named("http"))
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.AdminToken)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg, a.logger)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		if cfg.DBSeedEnabled {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
		}

		availabilityRepo := postgres.NewAvailabilityRepository(db)
		repos = repositories{
			players:      postgres.NewPlayerRepository(db),
			availability: availabilityRepo,
			pool:         availabilityRepo,
			teams:        postgres.NewTeamSheetRepository(db),
			dispatches:   postgres.NewJobDispatchRepository(db),
		}
	default:
		players := memory.NewPlayerRepository(nil)
		if cfg.DBSeedEnabled {
			players = memory.NewPlayerRepository(memory.SeedPlayers())
		}
		availabilityRepo := memory.NewAvailabilityRepository(players)
		repos = repositories{
			players:      players,
			availability: availabilityRepo,
			pool:         availabilityRepo,
			teams:        memory.NewTeamSheetRepository(),
			dispatches:   memory.NewJobDispatchRepository(),
		}
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cache.NewPlayerRepository(repos.players, store)
		repos.teams = cache.NewTeamSheetRepository(repos.teams, store)
	}

	a.logger.Info("repositories ready",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"seed_enabled", cfg.DBSeedEnabled,
	)
	return repos, nil
}

func newTeamsPublishedNotifier(cfg config.Config, dispatches jobscheduler.Repository, logger *logging.Logger) (*notify.TeamsPublishedNotifier, error) {
	publisher := notify.NewQStashPublisher(notify.QStashConfig{
		BaseURL:      cfg.QStashBaseURL,
		Token:        cfg.QStashToken,
		TargetURL:    cfg.QStashTargetURL,
		Retries:      cfg.QStashRetries,
		ForwardToken: cfg.QStashForwardToken,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailureCount,
			OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, logger.Named("qstash"))

	notifier, err := notify.NewTeamsPublishedNotifier(publisher, dispatches, notify.TeamsPublishedConfig{
		Workers: cfg.NotifyWorkers,
		Timeout: cfg.NotifyTimeout,
	}, logger.Named("notify"))
	if err != nil {
		return nil, fmt.Errorf("build teams published notifier: %w", err)
	}
	return notifier, nil
}

// StartBackground registers the deadline jobs and catches up on deadlines
// missed while the process was down.
func (a *App) StartBackground(ctx context.Context) error {
	if a.scheduler == nil {
		a.logger.Info("scheduler disabled")
		return nil
	}
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	a.runCatchUp(ctx, func(ctx context.Context) { a.scheduler.CatchUp(ctx) })
	return nil
}

func (a *App) runCatchUp(ctx context.Context, run func(context.Context)) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.cancelCatchUp = cancel
	a.catchUpDone = done

	go func() {
		defer close(done)
		defer cancel()
		run(ctx)
	}()
}

// waitCatchUp cancels a running catch-up pass and waits for it to unwind.
func (a *App) waitCatchUp(ctx context.Context) error {
	if a.catchUpDone == nil {
		return nil
	}
	a.cancelCatchUp()
	select {
	case <-a.catchUpDone:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for scheduler catch-up: %w", ctx.Err())
	}
}

// Shutdown stops accepting requests, then drains jobs and notifications.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if a.scheduler != nil {
		if err := a.scheduler.StopAll(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.waitCatchUp(ctx); err != nil {
		errs = append(errs, err)
	}
	if a.notifier != nil {
		if err := a.notifier.Close(remaining(ctx, 10*time.Second)); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func remaining(ctx context.Context, fallback time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback
	}
	if left := time.Until(deadline); left > 0 {
		return left
	}
	return time.Millisecond
}
