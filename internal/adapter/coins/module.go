package coins

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/checkin/internal/config"
)

// Module exposes the coins platform client to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*Client, error) {
	return NewClient(p.Config.CoinsBaseURL, p.Config.RequestTimeout, p.Logger)
}
