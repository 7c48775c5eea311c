package model

// BonusKind selects which secondary reward is claimed.
type BonusKind string

const (
	BonusStreak  BonusKind = "streak"
	BonusWeekly  BonusKind = "weekly"
	BonusMonthly BonusKind = "monthly"
)

// BonusClaim describes the result of a bonus claim request.
type BonusClaim struct {
	Kind           BonusKind
	Claimed        bool
	AlreadyClaimed bool
	Reward         string
	Message        string
}
