package repo

import (
	"context"

	dom "Tracker/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IssueRepo provides issue persistence.
type IssueRepo interface {
	Create(ctx context.Context, in dom.Issue) (dom.Issue, error)
	List(ctx context.Context) ([]dom.Issue, error)
	CountByStatus(ctx context.Context) (dom.Stats, error)
	Update(ctx context.Context, id int64, patch dom.Issue) error
	Delete(ctx context.Context, id int64) error
}

// PGIssueRepo implements IssueRepo with Postgres.
type PGIssueRepo struct {
	db *pgxpool.Pool
}

// NewPGIssueRepo returns a new PGIssueRepo.
func NewPGIssueRepo(db *pgxpool.Pool) *PGIssueRepo {
	return &PGIssueRepo{db: db}
}

const issueColumns = `id, issue, category, assignee, complainant_phone_number, complainant_email, status, created_at`

func (r *PGIssueRepo) Create(ctx context.Context, in dom.Issue) (dom.Issue, error) {
	query := `
		INSERT INTO issues (issue, category, assignee, complainant_phone_number, complainant_email, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + issueColumns
	var out dom.Issue
	err := r.db.QueryRow(ctx, query,
		in.IssueText, in.Category, in.Assignee, in.Complainant.PhoneNumber, in.Complainant.Email, in.Status,
	).Scan(
		&out.ID, &out.IssueText, &out.Category, &out.Assignee,
		&out.Complainant.PhoneNumber, &out.Complainant.Email, &out.Status, &out.CreatedAt,
	)
	return out, err
}

func (r *PGIssueRepo) List(ctx context.Context) ([]dom.Issue, error) {
	query := `SELECT ` + issueColumns + ` FROM issues ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Issue
	for rows.Next() {
		var t dom.Issue
		if err := rows.Scan(&t.ID, &t.IssueText, &t.Category, &t.Assignee,
			&t.Complainant.PhoneNumber, &t.Complainant.Email, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByStatus aggregates issue counts per status value. Pending and Resolved
// are reported individually; any other status contributes to the total only.
func (r *PGIssueRepo) CountByStatus(ctx context.Context) (dom.Stats, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM issues GROUP BY status`)
	if err != nil {
		return dom.Stats{}, err
	}
	defer rows.Close()
	var stats dom.Stats
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return dom.Stats{}, err
		}
		stats.TotalIssues += n
		switch status {
		case dom.StatusPending:
			stats.PendingIssues = n
		case dom.StatusResolved:
			stats.ResolvedIssues = n
		}
	}
	return stats, rows.Err()
}

// Update overwrites all mutable fields. An unknown id is a silent no-op.
func (r *PGIssueRepo) Update(ctx context.Context, id int64, patch dom.Issue) error {
	_, err := r.db.Exec(ctx,
		`UPDATE issues SET issue = $2, category = $3, assignee = $4, status = $5 WHERE id = $1`,
		id, patch.IssueText, patch.Category, patch.Assignee, patch.Status,
	)
	return err
}

// Delete removes the issue. An unknown id is a silent no-op.
func (r *PGIssueRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM issues WHERE id = $1`, id)
	return err
}
