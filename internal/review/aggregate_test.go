package review

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestAggregator_MergesAllEndpoints(t *testing.T) {
	now := time.Now()
	a := &fakeServer{name: "a"}
	b := &fakeServer{name: "b"}
	a.searchFn = func(string) ([]*Review, error) {
		return []*Review{
			openReview(a, 1, 5, 1, false, now),
			openReview(a, 2, 95, -1, false, now),
			openReview(a, 3, 120, -2, false, now),
		}, nil
	}
	b.searchFn = func(string) ([]*Review, error) {
		return []*Review{openReview(b, 9, 200, -2, true, now)}, nil
	}

	agg := Aggregator{Endpoints: []Endpoint{a, b}}
	items, failures := agg.Search(context.Background(), "status:open")

	if len(failures) != 0 {
		t.Fatalf("failures = %v", failures)
	}
	if len(items) != 4 {
		t.Fatalf("merged %d items, want 4", len(items))
	}
	for i, want := range []string{"a", "a", "a", "b"} {
		if items[i].ServerName() != want {
			t.Errorf("item %d origin = %q, want %q", i, items[i].ServerName(), want)
		}
	}
}

func TestAggregator_QueryReachesEveryEndpoint(t *testing.T) {
	var mu sync.Mutex
	queries := make(map[string]string)
	var endpoints []Endpoint
	for _, name := range []string{"a", "b", "c"} {
		srv := &fakeServer{name: name}
		srv.searchFn = func(q string) ([]*Review, error) {
			mu.Lock()
			queries[srv.name] = q
			mu.Unlock()
			return nil, nil
		}
		endpoints = append(endpoints, srv)
	}

	agg := Aggregator{Endpoints: endpoints}
	agg.Search(context.Background(), "owner:self status:open")

	for _, name := range []string{"a", "b", "c"} {
		if queries[name] != "owner:self status:open" {
			t.Errorf("endpoint %s saw query %q", name, queries[name])
		}
	}
}

func TestAggregator_PartialFailure(t *testing.T) {
	now := time.Now()
	good := &fakeServer{name: "good"}
	bad := &fakeServer{name: "bad"}
	good.searchFn = func(string) ([]*Review, error) {
		return []*Review{openReview(good, 1, 10, 0, false, now)}, nil
	}
	failure := errors.New("connection refused")
	bad.searchFn = func(string) ([]*Review, error) { return nil, failure }

	agg := Aggregator{Endpoints: []Endpoint{bad, good}}
	items, failures := agg.Search(context.Background(), "status:open")

	if len(items) != 1 || items[0].ServerName() != "good" {
		t.Fatalf("items = %v", items)
	}
	if len(failures) != 1 {
		t.Fatalf("failures = %v", failures)
	}
	if failures[0].Server != "bad" || !errors.Is(failures[0], failure) {
		t.Fatalf("failure = %+v", failures[0])
	}
}

func TestAggregator_AllEndpointsFail(t *testing.T) {
	bad1 := &fakeServer{name: "one"}
	bad2 := &fakeServer{name: "two"}
	bad1.searchFn = func(string) ([]*Review, error) { return nil, errors.New("down") }
	bad2.searchFn = func(string) ([]*Review, error) { return nil, errors.New("also down") }

	agg := Aggregator{Endpoints: []Endpoint{bad1, bad2}}
	items, failures := agg.Search(context.Background(), "status:open")

	if len(items) != 0 {
		t.Fatalf("items = %v", items)
	}
	if len(failures) != 2 {
		t.Fatalf("failures = %v", failures)
	}
}

func TestAggregator_Empty(t *testing.T) {
	agg := Aggregator{}
	items, failures := agg.Search(context.Background(), "status:open")
	if len(items) != 0 || len(failures) != 0 {
		t.Fatalf("items = %v, failures = %v", items, failures)
	}
}
