package domain

import "time"

// Statuses the stats aggregation recognizes. Status is stored as free text,
// so other values are possible; they show up in TotalIssues only.
const (
	StatusPending  = "Pending"
	StatusResolved = "Resolved"
)

// Complainant is the person who reported an issue; target of notifications.
type Complainant struct {
	PhoneNumber string
	Email       string
}

// Issue is the domain entity for a logged issue.
// ID doubles as the tracking number surfaced to the complainant.
type Issue struct {
	ID          int64
	IssueText   string
	Category    string
	Assignee    string
	Complainant Complainant
	Status      string
	CreatedAt   time.Time
}

// Stats is the per-status aggregate over all issues. PendingIssues and
// ResolvedIssues are real counts, not derived from each other.
type Stats struct {
	TotalIssues    int64
	PendingIssues  int64
	ResolvedIssues int64
}
