package review

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// fakeServer implements Endpoint without any transport. Search stamps the
// canned reviews with the server itself, mirroring what a real endpoint
// does during aggregation.
type fakeServer struct {
	name     string
	searchFn func(query string) ([]*Review, error)

	mu        sync.Mutex
	abandoned []string
	abandonFn func(changeID string) error
}

func (f *fakeServer) Name() string    { return f.name }
func (f *fakeServer) BaseURL() string { return "https://" + f.name + ".example.com/" }

func (f *fakeServer) Search(_ context.Context, query string) ([]*Review, error) {
	return f.searchFn(query)
}

func (f *fakeServer) Abandon(_ context.Context, changeID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.abandonFn != nil {
		if err := f.abandonFn(changeID); err != nil {
			return err
		}
	}
	f.abandoned = append(f.abandoned, changeID)
	return nil
}

func (f *fakeServer) abandonCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.abandoned...)
}

// openReview builds an open review of the given age and score, anchored to
// now so tests stay deterministic regardless of when they run.
func openReview(srv *fakeServer, number, ageDays, score int, wip bool, now time.Time) *Review {
	return &Review{
		Number:   number,
		ChangeID: "change-" + srv.name + "-" + strconv.Itoa(number),
		Project:  "demo",
		Subject:  "change " + strconv.Itoa(number),
		Owner:    "dev",
		Score:    score,
		WIP:      wip,
		Updated:  now.Add(-time.Duration(ageDays) * 24 * time.Hour),
		Status:   StatusOpen,
		Server:   srv,
	}
}
