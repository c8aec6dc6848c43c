package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/revq/revq/internal/review"
)

const maxSubjectWidth = 60

// Danger palette, one style per level. Normal stays unstyled.
var dangerStyles = map[review.Danger]lipgloss.Style{
	review.DangerNormal:       lipgloss.NewStyle(),
	review.DangerModerate:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	review.DangerConsiderable: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	review.DangerHigh:         lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	review.DangerVeryHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Faint(true),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var tableHeader = [5]string{"Review", "Age", "Project/Subject", "Meta", "Score"}

// rightAligned marks the numeric columns.
var rightAligned = [5]bool{true, false, false, false, true}

// TableWriter renders the report as a styled terminal table.
type TableWriter struct{}

func (t *TableWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	now := report.now()
	rows := report.Rows()

	cells := make([][5]string, len(rows))
	for i, r := range rows {
		cells[i] = r.Columns(now)
		cells[i][2] = runewidth.Truncate(cells[i][2], maxSubjectWidth, "…")
	}

	widths := columnWidths(cells)

	if report.Title != "" {
		ew.println(titleStyle.Render(report.Title))
	}
	ew.println(headerStyle.Render(renderRow(tableHeader, widths)))

	for i, r := range rows {
		style := dangerStyles[r.DangerAt(now)]
		ew.println(style.Render(renderRow(cells[i], widths)))
	}

	for _, f := range report.Failures {
		ew.println(failureStyle.Render("!! " + f.Server + ": " + f.Err.Error()))
	}

	ew.println(summaryStyle.Render(report.Summary()))
	return ew.err
}

func columnWidths(cells [][5]string) [5]int {
	var widths [5]int
	for i, h := range tableHeader {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func renderRow(cells [5]string, widths [5]int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if rightAligned[i] {
			parts[i] = pad(cell, widths[i]) + cell
		} else {
			parts[i] = cell + pad(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func pad(cell string, width int) string {
	n := width - runewidth.StringWidth(cell)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
