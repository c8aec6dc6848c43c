package output

import (
	"context"
	"testing"
	"time"

	"github.com/revq/revq/internal/review"
)

// stubOrigin satisfies review.Origin for rendering tests.
type stubOrigin struct {
	name string
}

func (s *stubOrigin) Name() string    { return s.name }
func (s *stubOrigin) BaseURL() string { return "https://" + s.name + ".example.com/" }
func (s *stubOrigin) Abandon(context.Context, string, string) error {
	return nil
}

func sampleReport(now time.Time) *Report {
	a := &stubOrigin{name: "a"}
	b := &stubOrigin{name: "b"}
	mk := func(srv *stubOrigin, number, ageDays, score int, wip bool) *review.Review {
		return &review.Review{
			Number:  number,
			Project: "demo",
			Subject: "change",
			Owner:   "dev",
			Score:   score,
			WIP:     wip,
			Updated: now.Add(-time.Duration(ageDays) * 24 * time.Hour),
			Status:  review.StatusOpen,
			Server:  srv,
		}
	}
	return &Report{
		Title: "Own reviews",
		Query: "status:open owner:self",
		Items: []*review.Review{
			mk(a, 1, 5, 1, false),
			mk(a, 2, 95, -1, false),
			mk(a, 3, 120, -2, false),
			mk(b, 9, 200, -2, true),
		},
		Now: now,
	}
}

func TestNewWriter(t *testing.T) {
	for _, format := range []string{"table", "json", "html"} {
		if _, err := NewWriter(format); err != nil {
			t.Errorf("NewWriter(%q): %v", format, err)
		}
	}
	if _, err := NewWriter("csv"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestReport_RowsDoesNotMutate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	report := sampleReport(now)

	original := make([]*review.Review, len(report.Items))
	copy(original, report.Items)

	rows := report.Rows()
	if rows[0].Number != 3 {
		t.Errorf("first row = %d, want the 120-day item", rows[0].Number)
	}
	for i := range original {
		if report.Items[i] != original[i] {
			t.Fatal("Rows reordered the underlying collection")
		}
	}
}

func TestReport_Summary(t *testing.T) {
	now := time.Now()
	report := sampleReport(now)
	if got := report.Summary(); got != "-- 4 changes listed from: status:open owner:self" {
		t.Errorf("Summary = %q", got)
	}

	empty := &Report{Title: "t"}
	if got := empty.Summary(); got != "-- 0 changes listed" {
		t.Errorf("empty Summary = %q", got)
	}
}
