package model

// PlatformResult collects everything observed for one (account, platform) pair.
type PlatformResult struct {
	Platform Platform        `json:"platform"`
	Outcome  ActionOutcome   `json:"outcome"`
	Initial  *BalanceReading `json:"initial,omitempty"`
	Final    *BalanceReading `json:"final,omitempty"`
	BonusLog []string        `json:"bonus_log,omitempty"`
}

// Delta returns final minus initial balance. The second value is false when
// either reading is missing, in which case the change is unknown.
func (r PlatformResult) Delta() (int64, bool) {
	if r.Initial == nil || r.Final == nil {
		return 0, false
	}
	return r.Final.Amount - r.Initial.Amount, true
}

// AccountResult aggregates both platforms for one account.
type AccountResult struct {
	Account Account        `json:"-"`
	Index   int            `json:"index"`
	Points  PlatformResult `json:"points"`
	Coins   PlatformResult `json:"coins"`
}

// OverallSuccess is false iff at least one configured platform failed.
func (r AccountResult) OverallSuccess() bool {
	return !r.Points.Outcome.Failed() && !r.Coins.Outcome.Failed()
}

// DisplayName returns the nickname reported by the points platform, if any.
func (r AccountResult) DisplayName() string {
	for _, reading := range []*BalanceReading{r.Points.Final, r.Points.Initial} {
		if reading != nil && reading.DisplayName != "" {
			return reading.DisplayName
		}
	}
	return ""
}
