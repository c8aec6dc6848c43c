package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/revq/revq/internal/review"
)

func TestJSONWriter(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	report := sampleReport(now)
	report.Failures = []review.QueryError{
		{Server: "down", Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got jsonReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if got.Count != 4 || len(got.Items) != 4 {
		t.Fatalf("count = %d, items = %d", got.Count, len(got.Items))
	}
	first := got.Items[0]
	if first.Server != "a" || first.Number != 3 {
		t.Errorf("first item = %s/%d, want a/3", first.Server, first.Number)
	}
	if first.Danger != "veryhigh" || first.AgeDays != 120 || first.Score != -2 {
		t.Errorf("first item = %+v", first)
	}
	wip := got.Items[2]
	if !wip.WIP || wip.Danger != "moderate" {
		t.Errorf("wip item = %+v", wip)
	}
	if len(got.Failures) != 1 || got.Failures[0].Server != "down" {
		t.Errorf("failures = %+v", got.Failures)
	}
}

func TestJSONWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	report := &Report{Title: "t", Now: time.Now()}
	if err := (&JSONWriter{}).Write(&buf, report); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got jsonReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Count != 0 || len(got.Items) != 0 {
		t.Errorf("got %+v", got)
	}
}
