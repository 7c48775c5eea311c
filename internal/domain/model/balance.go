package model

// BalanceReading is a single balance observation taken from a platform.
type BalanceReading struct {
	Amount       int64
	DisplayName  string
	CustomerCode string
}

// CheckInResponse is the decoded reply of a check-in request.
// Reward is nil when the platform does not report an immediate reward.
type CheckInResponse struct {
	Success bool
	Reward  *int64
	Message string
	Raw     string
}
