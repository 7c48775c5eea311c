package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/checkin/internal/config"
)

// Module provides the check-in use cases to the fx container.
var Module = fx.Provide(
	newDelays,
	newClock,
	newCalendar,
	NewCheckInUseCase,
	NewAccountUseCase,
	func(u *AccountUseCase) AccountRunner { return u },
	NewBatchUseCase,
)

func newDelays(cfg *config.Config) DelayProvider {
	if cfg.NoDelay {
		return NoDelays{}
	}
	return RandomDelays{
		StepMin:    cfg.StepDelayMin,
		StepMax:    cfg.StepDelayMax,
		AccountMin: cfg.AccountDelayMin,
		AccountMax: cfg.AccountDelayMax,
	}
}

func newClock(cfg *config.Config) Clock {
	return SystemClock{Location: cfg.Location}
}

func newCalendar(cfg *config.Config) Calendar {
	return Calendar{WeeklyDay: cfg.WeeklyBonusDay}
}
