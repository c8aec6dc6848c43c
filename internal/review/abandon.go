package review

import (
	"context"
	"log/slog"
	"time"
)

// View identifies which query view produced a collection. The incoming
// view lists reviews the user merely reviews rather than owns, so the
// abandon policy never acts on it.
type View string

const (
	ViewOwned    View = "owned"
	ViewIncoming View = "incoming"
	ViewMerged   View = "merged"
)

// OutcomeKind is the terminal state of one review after a policy pass.
type OutcomeKind string

const (
	OutcomeSkipped      OutcomeKind = "skipped-ineligible"
	OutcomeWouldAbandon OutcomeKind = "would-abandon"
	OutcomeAbandoned    OutcomeKind = "abandoned"
	OutcomeFailed       OutcomeKind = "abandon-failed"
)

// Outcome is the per-review result of one policy evaluation. Err is set
// only for OutcomeFailed.
type Outcome struct {
	Review *Review
	Kind   OutcomeKind
	Err    error
}

// AbandonPolicy decides which reviews are stale enough to abandon and,
// when Execute is set, performs the abandon calls. The zero Execute value
// is the dry-run safety default: eligible reviews are reported but nothing
// is sent to any server.
type AbandonPolicy struct {
	MaxAgeDays int
	Execute    bool
	Logger     *slog.Logger
}

// Eligible reports whether the review qualifies for abandonment at the
// given instant: still open, not WIP, negative score, at least MaxAgeDays
// old, and not produced by the incoming view. WIP reviews are deliberately
// parked by their owner, so staleness says nothing about them.
func (p AbandonPolicy) Eligible(r *Review, view View, now time.Time) bool {
	if view == ViewIncoming {
		return false
	}
	return r.Status == StatusOpen && !r.WIP && r.Score < 0 && r.AgeAt(now) >= p.MaxAgeDays
}

// Evaluate applies the policy to every review exactly once and returns one
// outcome per review, in input order. A failing abandon call is recorded
// as OutcomeFailed and never stops evaluation of the remaining reviews; no
// transaction spans items or servers.
func (p AbandonPolicy) Evaluate(ctx context.Context, items []*Review, view View) []Outcome {
	now := time.Now()
	outcomes := make([]Outcome, 0, len(items))
	for _, r := range items {
		switch {
		case !p.Eligible(r, view, now):
			outcomes = append(outcomes, Outcome{Review: r, Kind: OutcomeSkipped})
		case !p.Execute:
			p.logger().Info("would abandon",
				"review", r.Key(), "age", r.AgeAt(now), "score", r.Score)
			outcomes = append(outcomes, Outcome{Review: r, Kind: OutcomeWouldAbandon})
		default:
			if err := r.Abandon(ctx, false); err != nil {
				p.logger().Warn("abandon failed", "review", r.Key(), "error", err)
				outcomes = append(outcomes, Outcome{Review: r, Kind: OutcomeFailed, Err: err})
				continue
			}
			p.logger().Info("abandoned", "review", r.Key())
			outcomes = append(outcomes, Outcome{Review: r, Kind: OutcomeAbandoned})
		}
	}
	return outcomes
}

func (p AbandonPolicy) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}
