package listing

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// Contest is one competition record from the listing payload. The
// upstream payload is inconsistent about field spelling (camelCase vs
// snake_case), so both variants are kept and merged by accessors.
// Records are immutable once extracted.
type Contest struct {
	Amount            *string     `json:"amount"`
	AuditType         *string     `json:"audit_type"`
	AwardCoin         *string     `json:"award_coin"`
	CodeAccessCamel   *string     `json:"codeAccess"`
	CodeAccessSnake   *string     `json:"code_access"`
	ContestID         *int        `json:"contest_id"`
	ContestIDLegacy   *int        `json:"contestid"`
	Details           *string     `json:"details"`
	EndTime           *string     `json:"end_time"`
	FindingsRepoCamel *string     `json:"findingsRepo"`
	FindingsRepoSnake *string     `json:"findings_repo"`
	FormattedAmount   *string     `json:"formatted_amount"`
	GasAwardPool      *int        `json:"gas_award_pool"`
	Hide              *bool       `json:"hide"`
	HmAwardPool       *int        `json:"hm_award_pool"`
	League            *string     `json:"league"`
	QaAwardPool       *int        `json:"qa_award_pool"`
	Repo              *string     `json:"repo"`
	Slug              *string     `json:"slug"`
	Sponsor           *string     `json:"sponsor"`
	SponsorData       SponsorData `json:"sponsor_data"`
	StartTime         *string     `json:"start_time"`
	Status            *string     `json:"status"`
	Title             *string     `json:"title"`
	TotalAwardPool    *uint64     `json:"total_award_pool"`
	Type              *string     `json:"type"`
	UID               *string     `json:"uid"`
}

type SponsorData struct {
	CreatedAt *string `json:"created_at"`
	Image     *string `json:"image"`
	ImageURL  *string `json:"imageUrl"`
	Link      *string `json:"link"`
	Name      *string `json:"name"`
	UID       *string `json:"uid"`
	UpdatedAt *string `json:"updated_at"`
}

// ID returns the contest identifier, preferring the current field over
// the legacy spelling. Zero when neither is present.
func (c *Contest) ID() int {
	if c.ContestID != nil {
		return *c.ContestID
	}
	if c.ContestIDLegacy != nil {
		return *c.ContestIDLegacy
	}
	return 0
}

// CodeAccess merges the two accessibility field spellings.
func (c *Contest) CodeAccess() string {
	if c.CodeAccessSnake != nil && *c.CodeAccessSnake != "" {
		return *c.CodeAccessSnake
	}
	if c.CodeAccessCamel != nil {
		return *c.CodeAccessCamel
	}
	return ""
}

// Label is a human-readable identifier for logs and progress messages.
func (c *Contest) Label() string {
	if c.Slug != nil && *c.Slug != "" {
		return *c.Slug
	}
	if c.Sponsor != nil && *c.Sponsor != "" {
		return *c.Sponsor
	}
	return fmt.Sprintf("contest-%d", c.ID())
}

// RepoName returns the last path segment of the contest's repository
// reference.
func (c *Contest) RepoName() (string, error) {
	if c.Repo == nil || *c.Repo == "" {
		return "", fmt.Errorf("contest %s has no repository reference", c.Label())
	}
	ref := strings.TrimSuffix(strings.TrimSuffix(*c.Repo, "/"), ".git")
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = u.Path
	}
	name := path.Base(ref)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("contest %s has malformed repository reference %q", c.Label(), *c.Repo)
	}
	return name, nil
}

// Active reports whether the contest's end time, parsed as a
// timezone-aware instant, is strictly after now. A missing or
// malformed end time cannot prove the contest active.
func (c *Contest) Active(now time.Time) bool {
	if c.EndTime == nil {
		return false
	}
	end, err := time.Parse(time.RFC3339, *c.EndTime)
	if err != nil {
		return false
	}
	return end.After(now)
}
