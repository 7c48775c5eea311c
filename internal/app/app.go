package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/checkin/internal/config"
	"github.com/polkiloo/checkin/internal/domain/repository"
	"github.com/polkiloo/checkin/internal/notify"
	"github.com/polkiloo/checkin/internal/server/http/handlers"
	"github.com/polkiloo/checkin/internal/usecase"
	"github.com/polkiloo/checkin/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newCheckInFacade,
		newScheduler,
		newStatusService,
		func(s *StatusService) handlers.StatusFacade { return s },
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Config   *config.Config
	Batch    *usecase.BatchUseCase
	Reports  repository.ReportRepository
	Notifier *notify.Fanout
	Logger   *slog.Logger
}

func newCheckInFacade(p facadeParams) *CheckInFacade {
	return NewCheckInFacade(p.Batch, p.Config.Accounts, p.Reports, p.Notifier, os.Stdout, p.Logger)
}

type schedulerParams struct {
	fx.In

	Facade *CheckInFacade
	Config *config.Config
	Logger *slog.Logger
}

// newScheduler returns nil outside daemon mode.
func newScheduler(p schedulerParams) (*worker.Scheduler, error) {
	if !p.Config.Daemon() {
		return nil, nil
	}
	return worker.NewScheduler(p.Facade, p.Config.Schedule, p.Config.Location, p.Logger)
}

func newStatusService(facade *CheckInFacade, scheduler *worker.Scheduler) *StatusService {
	if scheduler == nil {
		return NewStatusService(facade, nil)
	}
	return NewStatusService(facade, scheduler)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

// newHTTPServer returns nil unless a daemon has a status address.
func newHTTPServer(p serverParams) *http.Server {
	if !p.Config.Daemon() || p.Config.StatusAddress == "" {
		return nil
	}
	return &http.Server{
		Addr:              p.Config.StatusAddress,
		Handler:           p.Router,
		ReadHeaderTimeout: p.Config.RequestTimeout,
	}
}

// Runner is the batch entry point driven by the lifecycle.
type Runner = worker.CheckInFacade

type lifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Runner     *CheckInFacade
	Scheduler  *worker.Scheduler
	Server     *http.Server
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	if p.Config.Daemon() {
		registerDaemon(p.Lifecycle, p.Shutdowner, p.Logger, p.Scheduler, p.Server, p.Config, p.Ctx)
		return
	}
	registerOneShot(p.Lifecycle, p.Shutdowner, p.Logger, p.Runner, p.Config, p.Ctx)
}

// registerOneShot runs a single batch after start and shuts the application
// down with the resulting exit code.
func registerOneShot(lc fx.Lifecycle, shutdowner fx.Shutdowner, logger *slog.Logger, runner Runner, cfg *config.Config, runCtx context.Context) {
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				code := 1
				report, err := runner.RunBatch(runCtx)
				if err != nil {
					logger.Error("check-in run failed", slog.Any("error", err))
				} else {
					code = report.ExitCode(cfg.FailOnError)
				}
				if err := shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Debug("shutdown signal not delivered", slog.Any("error", err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func registerDaemon(lc fx.Lifecycle, shutdowner fx.Shutdowner, logger *slog.Logger, scheduler *worker.Scheduler, server *http.Server, cfg *config.Config, runCtx context.Context) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := scheduler.Start(runCtx); err != nil {
				return err
			}
			if server == nil {
				logger.Info("checkin daemon started")
				return nil
			}
			logger.Info("checkin daemon started", slog.String("addr", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, cfg.ShutdownTimeout)
			}
			defer cancel()

			if server != nil {
				if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
			scheduler.Stop()
			logger.Info("checkin daemon stopped")
			return nil
		},
	})
}
