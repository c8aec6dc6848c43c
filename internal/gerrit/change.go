package gerrit

import (
	"fmt"
	"strings"
	"time"

	"github.com/revq/revq/internal/review"
)

// Change statuses returned by Gerrit.
const (
	statusNew       = "NEW"
	statusMerged    = "MERGED"
	statusAbandoned = "ABANDONED"
)

// Change is the subset of Gerrit's ChangeInfo entity consumed by revq.
type Change struct {
	ID             string           `json:"id"`
	Project        string           `json:"project"`
	Branch         string           `json:"branch"`
	Subject        string           `json:"subject"`
	Status         string           `json:"status"`
	Number         int              `json:"_number"`
	Updated        Timestamp        `json:"updated"`
	WorkInProgress bool             `json:"work_in_progress"`
	Owner          Account          `json:"owner"`
	Labels         map[string]Label `json:"labels"`
}

// Account is a Gerrit account reference.
type Account struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (a Account) display() string {
	switch {
	case a.Username != "":
		return a.Username
	case a.Name != "":
		return a.Name
	default:
		return a.Email
	}
}

// Label is the summarized label state returned with the LABELS option.
type Label struct {
	Approved    *Account `json:"approved"`
	Rejected    *Account `json:"rejected"`
	Recommended *Account `json:"recommended"`
	Disliked    *Account `json:"disliked"`
	Value       int      `json:"value"`
	Optional    bool     `json:"optional"`
}

// score maps the summarized state to a vote. A blocking state dominates
// within its label, mirroring how Gerrit gates submission.
func (l Label) score() int {
	switch {
	case l.Rejected != nil:
		return -2
	case l.Disliked != nil:
		return -1
	case l.Approved != nil:
		return 2
	case l.Recommended != nil:
		return 1
	default:
		return 0
	}
}

// Score sums the vote of every label on the change. Missing labels mean 0.
func (c *Change) Score() int {
	total := 0
	for _, l := range c.Labels {
		total += l.score()
	}
	return total
}

func (c *Change) reviewStatus() review.Status {
	switch c.Status {
	case statusMerged:
		return review.StatusMerged
	case statusAbandoned:
		return review.StatusAbandoned
	default:
		return review.StatusOpen
	}
}

// gerritTimeLayout is Gerrit's UTC timestamp format.
const gerritTimeLayout = "2006-01-02 15:04:05.000000000"

// Timestamp decodes Gerrit's timestamp encoding. The zero value survives
// absent or null fields, which the review model treats as maximum age.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := time.Parse(gerritTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parsing gerrit timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}
