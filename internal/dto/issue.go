package dto

import (
	"time"

	"Tracker/internal/notify"
)

// ComplainantPayload identifies the person to notify about a logged issue.
type ComplainantPayload struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,max=32"`
	Email       string `json:"email" binding:"required,email"`
}

// CreateIssueRequest is the JSON body for POST /issues.
type CreateIssueRequest struct {
	Issue       string             `json:"issue" binding:"required,min=1,max=2000"`
	Category    string             `json:"category" binding:"required,max=120"`
	Assignee    string             `json:"assignee" binding:"required,max=120"`
	Complainant ComplainantPayload `json:"complainant" binding:"required"`
}

// UpdateIssueRequest is the JSON body for PUT /issues/:id. All mutable fields
// are overwritten, status included.
type UpdateIssueRequest struct {
	Issue    string `json:"issue" binding:"required,min=1,max=2000"`
	Category string `json:"category" binding:"required,max=120"`
	Assignee string `json:"assignee" binding:"required,max=120"`
	Status   string `json:"status" binding:"required,max=60"`
}

// CreateIssueResponse reports the tracking number and the per-channel
// notification outcome.
type CreateIssueResponse struct {
	Message        string        `json:"message"`
	TrackingNumber int64         `json:"trackingNumber"`
	Notifications  notify.Result `json:"notifications"`
}

type IssueResponse struct {
	ID          int64              `json:"id"`
	Issue       string             `json:"issue"`
	Category    string             `json:"category"`
	Assignee    string             `json:"assignee"`
	Complainant ComplainantPayload `json:"complainant"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

type ListIssuesResponse struct {
	Items []IssueResponse `json:"items"`
}

// StatsResponse is the aggregate for GET /issues/stats. TotalIssues equals
// PendingIssues+ResolvedIssues only when no other status values are in use.
type StatsResponse struct {
	TotalIssues    int64 `json:"totalIssues"`
	ResolvedIssues int64 `json:"resolvedIssues"`
	PendingIssues  int64 `json:"pendingIssues"`
}
