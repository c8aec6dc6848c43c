package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Endpoint is one queryable review server connection.
type Endpoint interface {
	Origin
	// Search runs the server's change query and returns the matching
	// reviews already stamped with this endpoint as their origin.
	Search(ctx context.Context, query string) ([]*Review, error)
}

// QueryError records one endpoint's failure during aggregation.
type QueryError struct {
	Server string
	Err    error
}

func (e QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Server, e.Err)
}

func (e QueryError) Unwrap() error { return e.Err }

// Aggregator fans a single query out to every configured endpoint and
// merges the results. It holds no state between calls.
type Aggregator struct {
	Endpoints []Endpoint
	Logger    *slog.Logger
}

// Search queries every endpoint with the given query string and returns
// the concatenated results in endpoint order. A failing endpoint
// contributes zero items and one QueryError; it never aborts the other
// endpoints. No cross-endpoint deduplication happens: a review listed by
// two servers is two entries, because identity is server-scoped.
func (a *Aggregator) Search(ctx context.Context, query string) ([]*Review, []QueryError) {
	type result struct {
		items []*Review
		err   error
	}
	results := make([]result, len(a.Endpoints))

	// Endpoints share nothing, so they are queried in parallel. Results
	// land in their endpoint's slot to keep the merge order stable.
	var wg sync.WaitGroup
	for i, ep := range a.Endpoints {
		wg.Add(1)
		go func(i int, ep Endpoint) {
			defer wg.Done()
			items, err := ep.Search(ctx, query)
			results[i] = result{items: items, err: err}
		}(i, ep)
	}
	wg.Wait()

	var merged []*Review
	var failures []QueryError
	for i, res := range results {
		name := a.Endpoints[i].Name()
		if res.err != nil {
			a.logger().Warn("query failed", "server", name, "error", res.err)
			failures = append(failures, QueryError{Server: name, Err: res.err})
			continue
		}
		a.logger().Debug("query succeeded", "server", name, "results", len(res.items))
		merged = append(merged, res.items...)
	}
	return merged, failures
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}
