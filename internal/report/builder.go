package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/polkiloo/checkin/internal/domain/model"
	"github.com/polkiloo/checkin/internal/pkg/mask"
)

// Title is used as the notification subject.
const Title = "JLC check-in summary"

const (
	ruleWidth = 60
	branch    = "  ├── "
)

// Builder accumulates summary lines. The zero value is ready to use.
type Builder struct {
	lines []string
}

func (b *Builder) line(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

// String joins the collected lines.
func (b *Builder) String() string {
	return strings.Join(b.lines, "\n")
}

// Render produces the deterministic human-readable summary of a batch.
func Render(r *model.BatchReport) string {
	var b Builder
	return b.Render(r)
}

// Render resets the builder and renders r.
func (b *Builder) Render(r *model.BatchReport) string {
	b.lines = b.lines[:0]
	b.Write(r)
	return b.String()
}

// Write appends the summary of r to the builder.
func (b *Builder) Write(r *model.BatchReport) {
	rule := strings.Repeat("=", ruleWidth)
	b.line("%s", rule)
	b.line("Check-in summary")
	b.line("%s", rule)

	for _, res := range r.Results {
		b.account(res)
	}

	t := r.Totals
	b.line("Totals:")
	b.line("%saccounts: %d", branch, t.Accounts)
	b.line("%spoints check-in succeeded: %d", branch, t.PointsSucceeded)
	b.line("%scoins check-in succeeded: %d", branch, t.CoinsSucceeded)
	if t.PointsGained > 0 {
		b.line("%spoints gained: +%d", branch, t.PointsGained)
	}
	if t.CoinsGained > 0 {
		b.line("%scoins gained: +%d", branch, t.CoinsGained)
	}
	if len(t.FailedAccounts) > 0 {
		b.line("  failed accounts: %s", joinInts(t.FailedAccounts))
	} else {
		b.line("  all configured accounts succeeded")
	}
	b.line("%s", rule)
}

func (b *Builder) account(res model.AccountResult) {
	b.line("Account %d (%s):", res.Index, mask.Nickname(res.DisplayName()))
	b.platform("points", res.Points)
	b.platform("coins", res.Coins)
	b.line("  %s", strings.Repeat("-", ruleWidth-10))
}

func (b *Builder) platform(label string, p model.PlatformResult) {
	if !p.Outcome.Configured() {
		b.line("%s%s: not configured (skipped)", branch, label)
		return
	}

	b.line("%s%s: %s", branch, label, Status(p.Outcome))
	b.line("%s%s balance: %s", branch, label, change(p))
	for _, l := range p.BonusLog {
		b.line("%s%s", branch, l)
	}
	if !p.Outcome.IsSuccess() {
		b.line("%s%s check-in did not succeed", branch, label)
	}
}

// Status is the user-facing label of an outcome.
func Status(o model.ActionOutcome) string {
	switch o.Kind {
	case model.OutcomeSucceeded:
		if o.Reward > 0 {
			return fmt.Sprintf("checked in (+%d)", o.Reward)
		}
		return "checked in"
	case model.OutcomeAlreadyDone:
		return "already checked in today"
	case model.OutcomeBonusClaimed:
		return "checked in, streak bonus claimed"
	case model.OutcomeUnclear:
		return "checked in, needs manual check (" + o.Reason + ")"
	case model.OutcomeFailed:
		return "failed: " + o.Reason
	default:
		return "not configured"
	}
}

func change(p model.PlatformResult) string {
	if p.Initial == nil {
		return "unknown"
	}
	delta, ok := p.Delta()
	if !ok {
		return fmt.Sprintf("%d → unknown", p.Initial.Amount)
	}
	sign := ""
	if delta > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%d → %d (%s%d)", p.Initial.Amount, p.Final.Amount, sign, delta)
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
