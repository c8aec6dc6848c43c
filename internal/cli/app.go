package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/revq/revq/internal/config"
	"github.com/revq/revq/internal/gerrit"
	"github.com/revq/revq/internal/logging"
	"github.com/revq/revq/internal/output"
	"github.com/revq/revq/internal/review"
)

// errNoServers means not one configured server could be constructed, so
// there is nothing to query.
var errNoServers = errors.New("no usable servers")

// app is the assembled runtime behind every query command: effective
// config, logger, and the endpoints that survived construction.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	endpoints []review.Endpoint
	user      string
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagUser != "" {
		m["user"] = flagUser
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagAbandonAge > 0 {
		m["abandonAge"] = fmt.Sprintf("%d", flagAbandonAge)
	}
	if flagDebug {
		m["logLevel"] = "debug"
	}
	return m
}

// newApp loads config, builds the logger, and constructs every configured
// server. A server that fails to construct is skipped with a warning; zero
// usable servers is fatal.
func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig, buildOverrides())
	if err != nil {
		return nil, err
	}
	if flagServer >= 0 {
		if err := cfg.SelectServer(flagServer); err != nil {
			return nil, err
		}
	}

	logger, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}

	var endpoints []review.Endpoint
	for _, sc := range cfg.Servers {
		srv, err := gerrit.New(sc.URL, sc.Name, logger)
		if err != nil {
			logger.Warn("skipping server", "name", sc.Name, "error", err)
			continue
		}
		endpoints = append(endpoints, srv)
	}
	if len(endpoints) == 0 {
		return nil, errNoServers
	}

	user := cfg.User
	if strings.Contains(user, " ") {
		user = `"` + user + `"`
	}

	return &app{cfg: cfg, logger: logger, endpoints: endpoints, user: user}, nil
}

// report runs the full pipeline for one view: aggregate, render, and
// optionally evaluate the abandon policy on the merged collection.
func (a *app) report(view review.View, query, title string) error {
	ctx := context.Background()

	agg := review.Aggregator{Endpoints: a.endpoints, Logger: a.logger}
	items, failures := agg.Search(ctx, query)

	rep := &output.Report{
		Title:    title,
		Query:    query,
		Items:    items,
		Failures: failures,
	}
	if err := output.WriteReport(rep, a.cfg.Format, ""); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if flagOutput != "" {
		if err := output.WriteReport(rep, "html", flagOutput); err != nil {
			return fmt.Errorf("writing html report: %w", err)
		}
		a.logger.Info("report exported", "path", flagOutput)
	}

	if flagAbandon {
		policy := review.AbandonPolicy{
			MaxAgeDays: a.cfg.AbandonAge,
			Execute:    flagForce,
			Logger:     a.logger,
		}
		printOutcomes(os.Stderr, policy.Evaluate(ctx, items, view))
	}
	return nil
}

// printOutcomes summarizes a policy pass for the caller, one line per
// review that was (or would be) acted on.
func printOutcomes(w io.Writer, outcomes []review.Outcome) {
	counts := make(map[review.OutcomeKind]int)
	for _, o := range outcomes {
		counts[o.Kind]++
		switch o.Kind {
		case review.OutcomeWouldAbandon:
			fmt.Fprintf(w, "would abandon %s (use -f to perform)\n", o.Review.Key())
		case review.OutcomeAbandoned:
			fmt.Fprintf(w, "abandoned %s\n", o.Review.Key())
		case review.OutcomeFailed:
			fmt.Fprintf(w, "failed to abandon %s: %v\n", o.Review.Key(), o.Err)
		}
	}
	fmt.Fprintf(w, "-- abandon pass: %d eligible, %d abandoned, %d failed, %d skipped\n",
		counts[review.OutcomeWouldAbandon]+counts[review.OutcomeAbandoned]+counts[review.OutcomeFailed],
		counts[review.OutcomeAbandoned],
		counts[review.OutcomeFailed],
		counts[review.OutcomeSkipped])
}

// runView is the shared RunE body for the query commands.
func runView(view review.View, queryFn func(a *app) string, titleFn func(a *app) string) error {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errNoServers) {
			exitCode = ExitNoServers
		} else {
			exitCode = ExitConfigError
		}
		return nil
	}

	if err := a.report(view, queryFn(a), titleFn(a)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
	}
	return nil
}
