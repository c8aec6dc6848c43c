package review

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Status is the lifecycle state of a review as reported by its server.
type Status string

const (
	StatusOpen      Status = "open"
	StatusMerged    Status = "merged"
	StatusAbandoned Status = "abandoned"
)

// unknownAgeDays stands in for reviews whose server returned no update
// timestamp. They sort as old as it gets.
const unknownAgeDays = 1 << 30

// abandonMessage is posted to the server when the abandon policy acts.
const abandonMessage = "Abandoned by revq: stale change with negative score."

// Origin is a non-owning back-reference from a Review to the server it came
// from. It is used for display and for issuing the abandon call; the Review
// never manages the server's lifecycle, and many Reviews may share one
// Origin.
type Origin interface {
	// Name is the stable display name that scopes review numbers.
	Name() string
	// BaseURL is the server's root URL, used to build review links.
	BaseURL() string
	// Abandon abandons the change identified by changeID on the server.
	Abandon(ctx context.Context, changeID, message string) error
}

// Review is one normalized review item from one server. Immutable after
// construction except for the open -> abandoned transition performed by
// the abandon policy.
type Review struct {
	Number   int
	ChangeID string
	Project  string
	Branch   string
	Subject  string
	Owner    string
	Score    int
	WIP      bool
	Updated  time.Time
	Status   Status
	Server   Origin
}

// ServerName returns the origin server's display name, or "" when the
// review was built without one.
func (r *Review) ServerName() string {
	if r.Server == nil {
		return ""
	}
	return r.Server.Name()
}

// Key is the global identity of the review. Numbers are unique per server
// only; the (server, number) pair identifies a review across the merged
// collection.
func (r *Review) Key() string {
	return fmt.Sprintf("%s/%d", r.ServerName(), r.Number)
}

// URL is the web address of the review on its origin server.
func (r *Review) URL() string {
	if r.Server == nil {
		return ""
	}
	return fmt.Sprintf("%s#/c/%d/", r.Server.BaseURL(), r.Number)
}

// AgeAt returns the review's age in whole days at the given instant.
// A missing update timestamp counts as maximum age.
func (r *Review) AgeAt(now time.Time) int {
	if r.Updated.IsZero() {
		return unknownAgeDays
	}
	days := int(now.Sub(r.Updated).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Age is AgeAt against the wall clock.
func (r *Review) Age() int {
	return r.AgeAt(time.Now())
}

// DangerAt classifies the review at the given instant.
func (r *Review) DangerAt(now time.Time) Danger {
	return Classify(r.AgeAt(now), r.Score, r.WIP)
}

// Abandon delegates the state-changing call to the origin server and, on
// success, transitions the review to StatusAbandoned. With dryRun set,
// nothing is sent and the review is untouched.
func (r *Review) Abandon(ctx context.Context, dryRun bool) error {
	if dryRun {
		return nil
	}
	if r.Server == nil {
		return fmt.Errorf("review %s has no origin server", r.Key())
	}
	if err := r.Server.Abandon(ctx, r.ChangeID, abandonMessage); err != nil {
		return err
	}
	r.Status = StatusAbandoned
	return nil
}

// Columns projects the review into the report's display columns: review
// key, age, project/subject, meta (WIP marker plus danger tag), score.
// Pure; styling is the output layer's concern.
func (r *Review) Columns(now time.Time) [5]string {
	age := "?"
	if !r.Updated.IsZero() {
		age = strconv.Itoa(r.AgeAt(now))
	}
	meta := r.DangerAt(now).String()
	if r.WIP {
		meta = "WIP " + meta
	}
	return [5]string{
		r.Key(),
		age,
		r.Project + "/" + r.Subject,
		meta,
		strconv.Itoa(r.Score),
	}
}
