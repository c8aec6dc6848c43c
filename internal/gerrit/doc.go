// Package gerrit implements the per-server transport: an authenticated
// Gerrit REST client that runs change queries and issues abandon calls.
//
// A Server satisfies both review.Endpoint and review.Origin. Credentials
// are resolved from the user's netrc file at construction time, requests
// carry a bounded timeout, and rate-limited calls are retried with
// exponential backoff. Gerrit's ")]}'" XSSI prefix is stripped before
// responses are decoded.
package gerrit
