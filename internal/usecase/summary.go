package usecase

import "github.com/polkiloo/checkin/internal/domain/model"

// Summarize reduces account results into batch totals.
func Summarize(results []model.AccountResult) model.Totals {
	totals := model.Totals{Accounts: len(results), FailedAccounts: []int{}}

	for _, r := range results {
		if r.Points.Outcome.IsSuccess() {
			totals.PointsSucceeded++
		}
		if r.Coins.Outcome.IsSuccess() {
			totals.CoinsSucceeded++
		}
		if d, ok := r.Points.Delta(); ok && d > 0 {
			totals.PointsGained += d
		}
		if d, ok := r.Coins.Delta(); ok && d > 0 {
			totals.CoinsGained += d
		}
		if !r.OverallSuccess() {
			totals.FailedAccounts = append(totals.FailedAccounts, r.Index)
		}
	}
	return totals
}
