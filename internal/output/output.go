package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/revq/revq/internal/review"
)

// Report is a titled merged collection plus the per-server failures seen
// while building it.
type Report struct {
	Title    string
	Query    string
	Items    []*review.Review
	Failures []review.QueryError

	// Now anchors ages and ordering for every writer. Zero means wall
	// clock, which WriteReport pins once so all formats agree.
	Now time.Time
}

// Count returns the number of items in the report.
func (r *Report) Count() int { return len(r.Items) }

// Rows returns the items in report order. The underlying collection is
// never reordered.
func (r *Report) Rows() []*review.Review {
	rows := make([]*review.Review, len(r.Items))
	copy(rows, r.Items)
	review.Sort(rows, r.now())
	return rows
}

// Summary is the trailing count line.
func (r *Report) Summary() string {
	s := fmt.Sprintf("-- %d changes listed", len(r.Items))
	if r.Query != "" {
		s += " from: " + r.Query
	}
	return s
}

func (r *Report) now() time.Time {
	if r.Now.IsZero() {
		return time.Now()
	}
	return r.Now
}

// Writer renders a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// NewWriter returns a writer for the specified format.
func NewWriter(format string) (Writer, error) {
	switch format {
	case "table":
		return &TableWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "html":
		return &HTMLWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or
// stdout when outPath is empty).
func WriteReport(report *Report, format, outPath string) error {
	writer, err := NewWriter(format)
	if err != nil {
		return err
	}

	if report.Now.IsZero() {
		report.Now = time.Now()
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
