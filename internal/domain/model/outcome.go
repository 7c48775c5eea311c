package model

// OutcomeKind is the classification of a check-in for one platform.
type OutcomeKind string

const (
	OutcomeSucceeded     OutcomeKind = "succeeded"
	OutcomeAlreadyDone   OutcomeKind = "already_done"
	OutcomeBonusClaimed  OutcomeKind = "bonus_claimed"
	OutcomeUnclear       OutcomeKind = "unclear"
	OutcomeFailed        OutcomeKind = "failed"
	OutcomeNotConfigured OutcomeKind = "not_configured"
)

// ActionOutcome is the terminal state of the check-in flow for one platform.
type ActionOutcome struct {
	Kind   OutcomeKind `json:"kind"`
	Reward int64       `json:"reward,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// Configured reports whether the platform took part in the run.
func (o ActionOutcome) Configured() bool {
	return o.Kind != OutcomeNotConfigured && o.Kind != ""
}

// IsSuccess reports whether the check-in endpoint accepted the request.
// Unclear counts as success: the endpoint answered, only the bonus is in doubt.
func (o ActionOutcome) IsSuccess() bool {
	switch o.Kind {
	case OutcomeSucceeded, OutcomeAlreadyDone, OutcomeBonusClaimed, OutcomeUnclear:
		return true
	default:
		return false
	}
}

// Failed reports whether a configured platform failed.
func (o ActionOutcome) Failed() bool {
	return o.Kind == OutcomeFailed
}

func Succeeded(reward int64) ActionOutcome {
	return ActionOutcome{Kind: OutcomeSucceeded, Reward: reward}
}

func AlreadyDone() ActionOutcome {
	return ActionOutcome{Kind: OutcomeAlreadyDone}
}

func BonusClaimed(reward int64) ActionOutcome {
	return ActionOutcome{Kind: OutcomeBonusClaimed, Reward: reward}
}

func Unclear(reason string) ActionOutcome {
	return ActionOutcome{Kind: OutcomeUnclear, Reason: reason}
}

func Failed(reason string) ActionOutcome {
	return ActionOutcome{Kind: OutcomeFailed, Reason: reason}
}

func NotConfigured() ActionOutcome {
	return ActionOutcome{Kind: OutcomeNotConfigured}
}
