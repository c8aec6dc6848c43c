package output

import (
	"encoding/json"
	"io"
	"time"
)

// JSONWriter emits the machine-readable form of the report.
type JSONWriter struct{}

type jsonReport struct {
	Title    string        `json:"title"`
	Query    string        `json:"query,omitempty"`
	Count    int           `json:"count"`
	Items    []jsonItem    `json:"items"`
	Failures []jsonFailure `json:"failures,omitempty"`
}

type jsonItem struct {
	Server  string     `json:"server"`
	Number  int        `json:"number"`
	URL     string     `json:"url,omitempty"`
	Project string     `json:"project"`
	Branch  string     `json:"branch,omitempty"`
	Subject string     `json:"subject"`
	Owner   string     `json:"owner"`
	Score   int        `json:"score"`
	WIP     bool       `json:"wip"`
	Status  string     `json:"status"`
	Updated *time.Time `json:"updated,omitempty"`
	AgeDays int        `json:"ageDays"`
	Danger  string     `json:"danger"`
}

type jsonFailure struct {
	Server string `json:"server"`
	Error  string `json:"error"`
}

func (j *JSONWriter) Write(w io.Writer, report *Report) error {
	now := report.now()

	out := jsonReport{
		Title: report.Title,
		Query: report.Query,
		Count: report.Count(),
		Items: make([]jsonItem, 0, report.Count()),
	}
	for _, r := range report.Rows() {
		item := jsonItem{
			Server:  r.ServerName(),
			Number:  r.Number,
			URL:     r.URL(),
			Project: r.Project,
			Branch:  r.Branch,
			Subject: r.Subject,
			Owner:   r.Owner,
			Score:   r.Score,
			WIP:     r.WIP,
			Status:  string(r.Status),
			AgeDays: r.AgeAt(now),
			Danger:  r.DangerAt(now).String(),
		}
		if !r.Updated.IsZero() {
			u := r.Updated
			item.Updated = &u
		}
		out.Items = append(out.Items, item)
	}
	for _, f := range report.Failures {
		out.Failures = append(out.Failures, jsonFailure{Server: f.Server, Error: f.Err.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
