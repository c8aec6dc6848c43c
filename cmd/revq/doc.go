// Revq is a CLI dashboard over multiple Gerrit review servers.
//
// It runs one change query against every configured server, merges the
// results into a single report sorted by how much attention each change
// needs, and can abandon stale changes with negative scores (dry-run by
// default, -f to perform).
//
// Usage:
//
//	revq                  # open changes owned by self (same as revq owned)
//	revq incoming         # open changes waiting on your review
//	revq merged --age 7   # changes merged in the last week
//	revq owned -a         # dry-run the abandon policy on your open changes
//	revq owned -a -f      # actually abandon eligible changes
//	revq config init      # write a starter config file
//
// See https://github.com/revq/revq for full documentation.
package main
