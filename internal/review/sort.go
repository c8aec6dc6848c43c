package review

import (
	"sort"
	"time"
)

// Less reports whether a sorts before b in the report order: danger
// descending, then age descending, then the global key (server name, then
// number) ascending. The order is total, so any input permutation sorts to
// the same sequence.
func Less(a, b *Review, now time.Time) bool {
	da, db := a.DangerAt(now), b.DangerAt(now)
	if da != db {
		return da > db
	}
	aa, ab := a.AgeAt(now), b.AgeAt(now)
	if aa != ab {
		return aa > ab
	}
	if a.ServerName() != b.ServerName() {
		return a.ServerName() < b.ServerName()
	}
	return a.Number < b.Number
}

// Sort orders items in place per Less, evaluating every comparison at the
// same instant.
func Sort(items []*Review, now time.Time) {
	sort.Slice(items, func(i, j int) bool {
		return Less(items[i], items[j], now)
	})
}
