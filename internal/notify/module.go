package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/checkin/internal/config"
)

// Module exposes the notification fanout to fx graph.
var Module = fx.Provide(newFanout)

type fanoutParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// newFanout never fails: broken notification settings only disable channels.
func newFanout(p fanoutParams) *Fanout {
	var channels []Channel
	settings, err := ParseSettings(p.Config.Environment)
	if err != nil {
		p.Logger.Warn("notification settings ignored", slog.Any("error", err))
	} else {
		channels = settings.Channels(NewHTTPClient(p.Config.RequestTimeout), p.Logger)
	}
	f := NewFanout(channels, DefaultTimeout, p.Logger)
	p.Logger.Info("notification channels configured", slog.Any("channels", f.Channels()))
	return f
}
