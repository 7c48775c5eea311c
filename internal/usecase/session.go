package usecase

import (
	"context"

	"github.com/polkiloo/checkin/internal/domain/model"
)

// Session is one account's authenticated view of a platform.
// Any error means the value could not be determined; it is never a zero balance.
type Session interface {
	Platform() model.Platform
	Balance(ctx context.Context) (*model.BalanceReading, error)
	CheckIn(ctx context.Context) (*model.CheckInResponse, error)
	ClaimBonus(ctx context.Context, kind model.BonusKind) (*model.BonusClaim, error)
}

// SessionFactory opens a session for a configured credential.
type SessionFactory func(model.Credential) Session

// Platforms holds the session factories for both upstreams.
type Platforms struct {
	Points SessionFactory
	Coins  SessionFactory
}
