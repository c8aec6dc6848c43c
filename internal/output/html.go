package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/revq/revq/internal/review"
)

// HTMLWriter renders the report as a standalone HTML document, mirroring
// the terminal table for sharing or archiving.
type HTMLWriter struct{}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #101010; color: #d0d0d0; font-family: monospace; }
h1 { font-size: 1.2em; }
table { border-collapse: collapse; }
th, td { padding: 2px 10px; text-align: left; }
td.num { text-align: right; }
tr.moderate { color: #ffd700; }
tr.considerable { color: #ff8700; }
tr.high { color: #ff0000; }
tr.veryhigh { color: #af5f5f; }
p.summary { color: #808080; }
p.failure { color: #ff0000; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<tr><th>Review</th><th>Age</th><th>Project/Subject</th><th>Meta</th><th>Score</th></tr>
{{range .Rows}}<tr class="{{.Danger}}"><td class="num"><a href="{{.URL}}">{{.Key}}</a></td><td>{{.Age}}</td><td>{{.Subject}}</td><td>{{.Meta}}</td><td class="num">{{.Score}}</td></tr>
{{end}}</table>
{{range .Failures}}<p class="failure">!! {{.Server}}: {{.Error}}</p>
{{end}}<p class="summary">{{.Summary}}</p>
</body>
</html>
`))

type htmlRow struct {
	Key     string
	URL     string
	Age     string
	Subject string
	Meta    string
	Score   string
	Danger  string
}

type htmlData struct {
	Title    string
	Rows     []htmlRow
	Failures []jsonFailure
	Summary  string
}

func (h *HTMLWriter) Write(w io.Writer, report *Report) error {
	now := report.now()

	data := htmlData{
		Title:   report.Title,
		Rows:    make([]htmlRow, 0, report.Count()),
		Summary: report.Summary(),
	}
	for _, r := range report.Rows() {
		cols := r.Columns(now)
		data.Rows = append(data.Rows, htmlRow{
			Key:     cols[0],
			URL:     r.URL(),
			Age:     cols[1],
			Subject: cols[2],
			Meta:    cols[3],
			Score:   cols[4],
			Danger:  dangerClass(r.DangerAt(now)),
		})
	}
	for _, f := range report.Failures {
		data.Failures = append(data.Failures, jsonFailure{Server: f.Server, Error: f.Err.Error()})
	}

	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	return nil
}

func dangerClass(d review.Danger) string {
	if d == review.DangerNormal {
		return ""
	}
	return d.String()
}
