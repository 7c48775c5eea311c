package model

import "time"

// Totals are the batch-wide statistics derived from all account results.
type Totals struct {
	Accounts        int   `json:"accounts"`
	PointsSucceeded int   `json:"points_succeeded"`
	CoinsSucceeded  int   `json:"coins_succeeded"`
	PointsGained    int64 `json:"points_gained"`
	CoinsGained     int64 `json:"coins_gained"`
	FailedAccounts  []int `json:"failed_accounts"`
}

// BatchReport is the ordered outcome of a whole run.
type BatchReport struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Results    []AccountResult `json:"results"`
	Totals     Totals          `json:"totals"`
}

// ExitCode maps the report to the process exit code.
func (r *BatchReport) ExitCode(failOnError bool) int {
	if failOnError && len(r.Totals.FailedAccounts) > 0 {
		return 1
	}
	return 0
}
