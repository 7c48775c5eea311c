package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/checkin/internal/domain/errors"
	"github.com/polkiloo/checkin/internal/domain/model"
	testhelpers "github.com/polkiloo/checkin/internal/test"
)

var (
	wednesday   = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	sundayEnd   = time.Date(2026, 5, 31, 9, 0, 0, 0, time.UTC)
	discardLogs = slog.New(slog.NewJSONHandler(io.Discard, nil))
)

func newCheckIn(now time.Time) *CheckInUseCase {
	return NewCheckInUseCase(NoDelays{}, testhelpers.ClockStub{T: now}, Calendar{WeeklyDay: time.Sunday}, discardLogs)
}

func factory(s *testhelpers.SessionStub) SessionFactory {
	return func(model.Credential) Session { return s }
}

func readings(amounts ...int64) []*model.BalanceReading {
	out := make([]*model.BalanceReading, len(amounts))
	for i, a := range amounts {
		out[i] = &model.BalanceReading{Amount: a}
	}
	return out
}

func TestCheckInNotConfigured(t *testing.T) {
	stub := &testhelpers.SessionStub{}
	opened := false
	open := func(model.Credential) Session { opened = true; return stub }

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformPoints, "", open)

	assert.Equal(t, model.NotConfigured(), res.Outcome)
	assert.Equal(t, model.PlatformPoints, res.Platform)
	assert.False(t, opened, "session must not be opened without credential")
	assert.Empty(t, stub.Calls)
}

func TestCheckInInitialBalanceFailure(t *testing.T) {
	stub := &testhelpers.SessionStub{Readings: []*model.BalanceReading{nil}}

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformCoins, "tok", factory(stub))

	assert.Equal(t, model.Failed("could not read initial balance"), res.Outcome)
	assert.Equal(t, []string{"balance"}, stub.Calls)
	assert.Nil(t, res.Initial)
}

func TestCheckInSucceededWithReward(t *testing.T) {
	stub := &testhelpers.SessionStub{
		Readings: readings(10, 15),
		CheckInFn: func(context.Context) (*model.CheckInResponse, error) {
			return &model.CheckInResponse{Success: true, Reward: reward(5)}, nil
		},
	}

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformCoins, "tok", factory(stub))

	assert.Equal(t, model.Succeeded(5), res.Outcome)
	delta, ok := res.Delta()
	require.True(t, ok)
	assert.Equal(t, int64(5), delta)
	assert.Zero(t, stub.CallCount("claim:streak"))
}

func TestCheckInAlreadyDoneSkipsStreakClaim(t *testing.T) {
	stub := &testhelpers.SessionStub{
		Readings: readings(7, 7),
		CheckInFn: func(context.Context) (*model.CheckInResponse, error) {
			return &model.CheckInResponse{Success: false, Message: "您今天已经签到过了"}, nil
		},
	}

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformCoins, "tok", factory(stub))

	assert.Equal(t, model.AlreadyDone(), res.Outcome)
	assert.True(t, res.Outcome.IsSuccess())
	assert.Empty(t, stub.Claims)
	delta, ok := res.Delta()
	require.True(t, ok)
	assert.Zero(t, delta)
}

func TestCheckInZeroRewardBonusClaimed(t *testing.T) {
	stub := &testhelpers.SessionStub{
		Readings: readings(10, 20),
		CheckInFn: func(context.Context) (*model.CheckInResponse, error) {
			return &model.CheckInResponse{Success: true, Reward: reward(0)}, nil
		},
		ClaimFn: func(_ context.Context, kind model.BonusKind) (*model.BonusClaim, error) {
			if kind != model.BonusStreak {
				return nil, domainErrors.ErrBonusNotSupported
			}
			return &model.BonusClaim{Kind: kind, Claimed: true}, nil
		},
	}

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformCoins, "tok", factory(stub))

	assert.Equal(t, model.OutcomeBonusClaimed, res.Outcome.Kind)
	assert.Equal(t, 1, stub.CallCount("claim:streak"))
}

func TestCheckInZeroRewardBonusClaimFailsStillSucceeds(t *testing.T) {
	cases := map[string]func(context.Context, model.BonusKind) (*model.BonusClaim, error){
		"transport error": func(context.Context, model.BonusKind) (*model.BonusClaim, error) {
			return nil, errors.New("timeout")
		},
		"not granted": func(_ context.Context, kind model.BonusKind) (*model.BonusClaim, error) {
			return &model.BonusClaim{Kind: kind, Message: "no voucher"}, nil
		},
	}

	for name, claim := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &testhelpers.SessionStub{
				Readings: readings(3, 3),
				CheckInFn: func(context.Context) (*model.CheckInResponse, error) {
					return &model.CheckInResponse{Success: true, Reward: reward(0)}, nil
				},
				ClaimFn: claim,
			}

			res := newCheckIn(wednesday).Run(context.Background(), 2, model.PlatformCoins, "tok", factory(stub))

			assert.Equal(t, model.OutcomeUnclear, res.Outcome.Kind)
			assert.True(t, res.Outcome.IsSuccess())
			assert.False(t, res.Outcome.Failed())
			assert.NotNil(t, res.Final)
		})
	}
}

func TestCheckInZeroRewardWithoutStreakSupport(t *testing.T) {
	stub := &testhelpers.SessionStub{
		Readings: readings(100, 110),
		CheckInFn: func(context.Context) (*model.CheckInResponse, error) {
			return &model.CheckInResponse{Success: true}, nil
		},
	}

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformPoints, "cookie", factory(stub))

	assert.Equal(t, model.Succeeded(0), res.Outcome)
}

func TestCheckInFailureStopsBeforeReconfirmation(t *testing.T) {
	cases := map[string]func(context.Context) (*model.CheckInResponse, error){
		"rejected": func(context.Context) (*model.CheckInResponse, error) {
			return &model.CheckInResponse{Message: "risk control"}, nil
		},
		"transport": func(context.Context) (*model.CheckInResponse, error) {
			return nil, errors.New("connection reset")
		},
	}

	for name, checkIn := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &testhelpers.SessionStub{Readings: readings(1, 1), CheckInFn: checkIn}

			res := newCheckIn(sundayEnd).Run(context.Background(), 1, model.PlatformPoints, "cookie", factory(stub))

			assert.True(t, res.Outcome.Failed())
			assert.Equal(t, 1, stub.CallCount("balance"), "no reconfirmation query after failure")
			assert.Empty(t, stub.Claims, "no gifts after failure")
			assert.Nil(t, res.Final)
		})
	}
}

func TestCheckInFinalBalanceUnknown(t *testing.T) {
	stub := &testhelpers.SessionStub{Readings: []*model.BalanceReading{{Amount: 9}, nil}}

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformCoins, "tok", factory(stub))

	assert.Equal(t, model.Succeeded(1), res.Outcome)
	assert.Nil(t, res.Final)
	_, ok := res.Delta()
	assert.False(t, ok, "delta must be unknown, not zero")
}

func TestCheckInNegativeDeltaIsStillSuccess(t *testing.T) {
	stub := &testhelpers.SessionStub{Readings: readings(50, 40)}

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformCoins, "tok", factory(stub))

	assert.True(t, res.Outcome.IsSuccess())
	delta, ok := res.Delta()
	require.True(t, ok)
	assert.Equal(t, int64(-10), delta)
}

func TestCheckInPeriodicGiftsOnSundayMonthEnd(t *testing.T) {
	stub := &testhelpers.SessionStub{
		Readings: readings(10, 30),
		CheckInFn: func(context.Context) (*model.CheckInResponse, error) {
			return &model.CheckInResponse{Success: false, Message: "今天已签到"}, nil
		},
		ClaimFn: func(_ context.Context, kind model.BonusKind) (*model.BonusClaim, error) {
			switch kind {
			case model.BonusWeekly:
				return &model.BonusClaim{Kind: kind, Claimed: true, Reward: "coupon"}, nil
			case model.BonusMonthly:
				return nil, errors.New("gateway timeout")
			default:
				return nil, domainErrors.ErrBonusNotSupported
			}
		},
	}

	res := newCheckIn(sundayEnd).Run(context.Background(), 1, model.PlatformPoints, "cookie", factory(stub))

	assert.Equal(t, model.AlreadyDone(), res.Outcome, "gift failures never change the outcome")
	assert.Equal(t, []model.BonusKind{model.BonusWeekly, model.BonusMonthly}, stub.Claims)
	require.Len(t, res.BonusLog, 2)
	assert.Equal(t, "weekly gift: claimed coupon", res.BonusLog[0])
	assert.Contains(t, res.BonusLog[1], "monthly gift: claim failed")
}

func TestCheckInPeriodicGiftsNotDue(t *testing.T) {
	stub := &testhelpers.SessionStub{
		Readings: readings(1, 2),
		ClaimFn: func(context.Context, model.BonusKind) (*model.BonusClaim, error) {
			require.Fail(t, "no gift claim expected on a regular weekday")
			return nil, nil
		},
	}

	res := newCheckIn(wednesday).Run(context.Background(), 1, model.PlatformPoints, "cookie", factory(stub))

	assert.Empty(t, res.BonusLog)
}

func TestCheckInUnsupportedGiftsAreSilent(t *testing.T) {
	stub := &testhelpers.SessionStub{Readings: readings(1, 2)}

	res := newCheckIn(sundayEnd).Run(context.Background(), 1, model.PlatformCoins, "tok", factory(stub))

	assert.Empty(t, res.BonusLog)
	assert.Len(t, stub.Claims, 2)
}

func TestAccountUseCaseRunsBothPlatforms(t *testing.T) {
	points := &testhelpers.SessionStub{Readings: []*model.BalanceReading{{Amount: 1, DisplayName: "maker"}, {Amount: 2, DisplayName: "maker"}}}
	coins := &testhelpers.SessionStub{PlatformVal: model.PlatformCoins, Readings: readings(5, 6)}

	uc := NewAccountUseCase(newCheckIn(wednesday), Platforms{Points: factory(points), Coins: factory(coins)})
	res := uc.Run(context.Background(), model.Account{Index: 3, CoinsToken: "tok", PointsCookie: "cookie"})

	assert.Equal(t, 3, res.Index)
	assert.Equal(t, model.PlatformPoints, res.Points.Platform)
	assert.Equal(t, model.PlatformCoins, res.Coins.Platform)
	assert.True(t, res.OverallSuccess())
	assert.Equal(t, "maker", res.DisplayName())
}
