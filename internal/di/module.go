package di

import (
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/polkiloo/checkin/internal/adapter/coins"
	"github.com/polkiloo/checkin/internal/adapter/points"
	"github.com/polkiloo/checkin/internal/app"
	"github.com/polkiloo/checkin/internal/config"
	"github.com/polkiloo/checkin/internal/domain/model"
	"github.com/polkiloo/checkin/internal/logger"
	"github.com/polkiloo/checkin/internal/notify"
	"github.com/polkiloo/checkin/internal/pkg/auth"
	"github.com/polkiloo/checkin/internal/server/http/router"
	"github.com/polkiloo/checkin/internal/storage/memory"
	"github.com/polkiloo/checkin/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		fx.WithLogger(newEventLogger),
		config.Module,
		logger.Module,
		auth.Module,
		memory.Module,
		points.Module,
		coins.Module,
		fx.Provide(newPlatforms),
		usecase.Module,
		notify.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

// newEventLogger keeps container events out of the summary output.
func newEventLogger(l *slog.Logger) fxevent.Logger {
	el := &fxevent.SlogLogger{Logger: l}
	el.UseLogLevel(slog.LevelDebug)
	return el
}

func newPlatforms(pc *points.Client, cc *coins.Client) usecase.Platforms {
	return usecase.Platforms{
		Points: func(cred model.Credential) usecase.Session { return pc.Session(cred) },
		Coins:  func(cred model.Credential) usecase.Session { return cc.Session(cred) },
	}
}
