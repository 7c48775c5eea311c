package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
	"github.com/polkiloo/checkin/internal/pkg/mask"
)

// CheckInUseCase drives a single (account, platform) pair through the check-in flow.
type CheckInUseCase struct {
	delays   DelayProvider
	clock    Clock
	calendar Calendar
	logger   *slog.Logger
}

// NewCheckInUseCase constructs CheckInUseCase.
func NewCheckInUseCase(delays DelayProvider, clock Clock, calendar Calendar, logger *slog.Logger) *CheckInUseCase {
	if delays == nil {
		delays = NoDelays{}
	}
	return &CheckInUseCase{delays: delays, clock: clock, calendar: calendar, logger: logger}
}

// Run fetches the balance, checks in, claims due bonuses and re-reads the balance.
// It never returns an error: every failure is folded into the result.
func (u *CheckInUseCase) Run(ctx context.Context, index int, platform model.Platform, cred model.Credential, open SessionFactory) model.PlatformResult {
	result := model.PlatformResult{Platform: platform}
	log := u.logger.With(slog.Int("account", index), slog.String("platform", string(platform)))

	if !cred.Configured() || open == nil {
		log.Info("credential missing, skipping platform")
		result.Outcome = model.NotConfigured()
		return result
	}
	session := open(cred)

	initial, err := session.Balance(ctx)
	if err != nil {
		log.Error("read initial balance failed", slog.String("error", err.Error()))
		result.Outcome = model.Failed("could not read initial balance")
		return result
	}
	result.Initial = initial
	log.Info("balance before check-in",
		slog.Int64("balance", initial.Amount),
		slog.String("user", describe(initial)),
	)

	sleep(ctx, u.delays.StepDelay())
	resp, err := session.CheckIn(ctx)
	if err != nil {
		log.Error("check-in request failed", slog.String("error", err.Error()))
	}

	outcome, claimStreak := ClassifyCheckIn(resp)
	if claimStreak {
		outcome = u.claimStreak(ctx, log, session)
	}
	result.Outcome = outcome

	if outcome.Failed() {
		log.Error("check-in failed", slog.String("reason", outcome.Reason))
		return result
	}
	log.Info("check-in accepted", slog.String("outcome", string(outcome.Kind)), slog.Int64("reward", outcome.Reward))

	result.BonusLog = u.claimPeriodic(ctx, log, session)

	sleep(ctx, u.delays.StepDelay())
	final, err := session.Balance(ctx)
	if err != nil {
		log.Warn("read final balance failed, change unknown", slog.String("error", err.Error()))
		return result
	}
	result.Final = final

	delta, _ := result.Delta()
	attrs := []any{slog.Int64("before", initial.Amount), slog.Int64("after", final.Amount), slog.Int64("delta", delta)}
	switch {
	case delta > 0:
		log.Info("balance increased", attrs...)
	case delta == 0:
		log.Warn("balance unchanged", attrs...)
	default:
		log.Warn("balance decreased", attrs...)
	}
	return result
}

// claimStreak resolves a zero-reward success. The run never fails on this path.
func (u *CheckInUseCase) claimStreak(ctx context.Context, log *slog.Logger, session Session) model.ActionOutcome {
	claim, err := session.ClaimBonus(ctx, model.BonusStreak)
	switch {
	case errors.Is(err, domainErrors.ErrBonusNotSupported):
		return model.Succeeded(0)
	case err != nil:
		log.Warn("streak bonus claim failed", slog.String("error", err.Error()))
		return model.Unclear("no reward and streak bonus claim failed")
	case claim.Claimed:
		log.Info("streak bonus claimed")
		return model.BonusClaimed(0)
	default:
		log.Info("streak bonus not granted", slog.String("message", claim.Message))
		return model.Unclear("no reward and streak bonus not granted")
	}
}

// claimPeriodic attempts the weekly and month-end gifts that are due today.
func (u *CheckInUseCase) claimPeriodic(ctx context.Context, log *slog.Logger, session Session) []string {
	now := u.clock.Now()
	var lines []string

	due := []struct {
		kind  model.BonusKind
		label string
		ok    bool
	}{
		{model.BonusWeekly, "weekly gift", u.calendar.IsEndOfWeek(now)},
		{model.BonusMonthly, "monthly gift", u.calendar.IsLastDayOfMonth(now)},
	}

	for _, d := range due {
		if !d.ok {
			continue
		}
		claim, err := session.ClaimBonus(ctx, d.kind)
		if errors.Is(err, domainErrors.ErrBonusNotSupported) {
			continue
		}

		var line string
		switch {
		case errors.Is(err, domainErrors.ErrBonusNotFound):
			line = fmt.Sprintf("%s: not offered", d.label)
		case err != nil:
			line = fmt.Sprintf("%s: claim failed (%v)", d.label, err)
		case claim.Claimed:
			line = fmt.Sprintf("%s: claimed %s", d.label, claim.Reward)
		case claim.AlreadyClaimed:
			line = fmt.Sprintf("%s: already claimed", d.label)
		default:
			line = fmt.Sprintf("%s: not granted (%s)", d.label, claim.Message)
		}
		log.Info("periodic gift", slog.String("bonus", string(d.kind)), slog.String("result", line))
		lines = append(lines, line)
	}
	return lines
}

func describe(r *model.BalanceReading) string {
	if r.DisplayName != "" {
		return mask.Nickname(r.DisplayName)
	}
	return mask.Account(r.CustomerCode)
}

// AccountUseCase runs both platforms for one account.
type AccountUseCase struct {
	checkin   *CheckInUseCase
	platforms Platforms
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(checkin *CheckInUseCase, platforms Platforms) *AccountUseCase {
	return &AccountUseCase{checkin: checkin, platforms: platforms}
}

// Run processes the points platform first, then the coins platform.
func (u *AccountUseCase) Run(ctx context.Context, account model.Account) model.AccountResult {
	return model.AccountResult{
		Account: account,
		Index:   account.Index,
		Points:  u.checkin.Run(ctx, account.Index, model.PlatformPoints, account.PointsCookie, u.platforms.Points),
		Coins:   u.checkin.Run(ctx, account.Index, model.PlatformCoins, account.CoinsToken, u.platforms.Coins),
	}
}
