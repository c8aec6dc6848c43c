package gerrit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/revq/revq/internal/redact"
	"github.com/revq/revq/internal/review"
)

const (
	// xssiPrefix guards Gerrit JSON responses against cross-site script
	// inclusion; it must be stripped before decoding.
	xssiPrefix = ")]}'"

	defaultTimeout = 30 * time.Second
	maxRetries     = 3
)

// Server is one authenticated Gerrit connection. It satisfies both
// review.Endpoint and review.Origin; every Review it produces keeps a
// back-reference to it for display and for the abandon call.
type Server struct {
	name     string
	baseURL  string
	username string
	password string
	logger   *slog.Logger
	client   *http.Client
}

// New constructs a Server for the given base URL. The display name defaults
// to the URL's host. Credentials come from the user's netrc; a server whose
// credentials cannot be resolved fails construction, which the caller
// treats as skipping this server rather than aborting the rest.
func New(rawURL, name string, logger *slog.Logger) (*Server, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server url %q: %w", redact.URL(rawURL), err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q has no host", redact.URL(rawURL))
	}
	if name == "" {
		name = u.Host
	}

	cred := credentials{}
	if u.User != nil {
		// Inline userinfo in the configured URL wins over netrc, but it
		// never appears in request URLs, logs, or errors.
		cred.login = u.User.Username()
		cred.password, _ = u.User.Password()
		u.User = nil
		rawURL = u.String()
	} else {
		cred, err = loadCredentials(u.Host)
		if err != nil {
			return nil, fmt.Errorf("credentials for %s: %w", u.Host, err)
		}
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		name:     name,
		baseURL:  strings.TrimRight(rawURL, "/") + "/",
		username: cred.login,
		password: cred.password,
		logger:   logger,
		client:   &http.Client{Timeout: defaultTimeout},
	}, nil
}

// Name implements review.Origin.
func (s *Server) Name() string { return s.name }

// BaseURL implements review.Origin.
func (s *Server) BaseURL() string { return s.baseURL }

// Search implements review.Endpoint. It runs the change query and converts
// the results into review items stamped with this server.
func (s *Server) Search(ctx context.Context, query string) ([]*review.Review, error) {
	changes, err := s.queryChanges(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]*review.Review, 0, len(changes))
	for _, c := range changes {
		items = append(items, s.toReview(c))
	}
	return items, nil
}

func (s *Server) queryChanges(ctx context.Context, query string) ([]Change, error) {
	params := url.Values{}
	params.Set("q", query)
	params["o"] = []string{"LABELS", "COMMIT_FOOTERS"}
	endpoint := s.baseURL + "a/changes/?" + params.Encode()

	s.logger.Debug("querying changes", "server", s.name, "query", query)

	var changes []Change
	err := retryWithBackoff(ctx, maxRetries, func() error {
		body, err := s.do(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		changes = nil
		return decodeJSON(body, &changes)
	})
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", s.name, err)
	}
	return changes, nil
}

// Abandon implements review.Origin. It posts the abandon action for the
// given change to this server.
func (s *Server) Abandon(ctx context.Context, changeID, message string) error {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return fmt.Errorf("marshaling abandon request: %w", err)
	}
	endpoint := s.baseURL + "a/changes/" + url.PathEscape(changeID) + "/abandon"

	s.logger.Debug("abandoning change", "server", s.name, "change", changeID)

	return retryWithBackoff(ctx, maxRetries, func() error {
		_, err := s.do(ctx, http.MethodPost, endpoint, payload)
		return err
	})
}

// do performs one authenticated request and maps HTTP failures onto the
// package's error taxonomy. Response bodies embedded in errors are passed
// through the credential scrubber first.
func (s *Server) do(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(s.username, s.password)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &rateLimitError{}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &authError{server: s.name}
	case resp.StatusCode >= 500:
		return nil, &serverError{statusCode: resp.StatusCode, body: redact.Secrets(string(body))}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, redact.Secrets(string(body)))
	}
	return body, nil
}

func (s *Server) toReview(c Change) *review.Review {
	return &review.Review{
		Number:   c.Number,
		ChangeID: c.ID,
		Project:  c.Project,
		Branch:   c.Branch,
		Subject:  c.Subject,
		Owner:    c.Owner.display(),
		Score:    c.Score(),
		WIP:      c.WorkInProgress,
		Updated:  c.Updated.Time,
		Status:   c.reviewStatus(),
		Server:   s,
	}
}

// decodeJSON strips Gerrit's XSSI prefix and unmarshals the rest.
func decodeJSON(body []byte, v any) error {
	trimmed := bytes.TrimSpace(body)
	trimmed = bytes.TrimPrefix(trimmed, []byte(xssiPrefix))
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
