package service

import (
	"context"
	"strings"

	"Tracker/internal/cache"
	dom "Tracker/internal/domain"
	"Tracker/internal/notify"
	"Tracker/internal/repo"

	"golang.org/x/sync/singleflight"
)

// IssueService handles issue CRUD, stats and the creation-time notification fan-out.
type IssueService struct {
	repo     repo.IssueRepo
	cache    *cache.IssueCache
	notifier *notify.Dispatcher
	sf       singleflight.Group
}

// NewIssueService creates an IssueService. If c is nil, caching is disabled.
func NewIssueService(r repo.IssueRepo, c *cache.IssueCache, notifier *notify.Dispatcher) *IssueService {
	return &IssueService{repo: r, cache: c, notifier: notifier}
}

// Create logs a new issue with status forced to Pending, then notifies the
// complainant over SMS and email. Notification failures never fail the create;
// the per-channel outcome is returned for diagnostics.
func (s *IssueService) Create(ctx context.Context, issueText, category, assignee string, complainant dom.Complainant) (dom.Issue, notify.Result, error) {
	t, err := s.repo.Create(ctx, dom.Issue{
		IssueText:   strings.TrimSpace(issueText),
		Category:    strings.TrimSpace(category),
		Assignee:    strings.TrimSpace(assignee),
		Complainant: complainant,
		Status:      dom.StatusPending,
	})
	if err != nil {
		return dom.Issue{}, notify.Result{}, err
	}
	s.invalidateCache(ctx)
	result := s.notifier.Notify(ctx, t.ID, complainant)
	return t, result, nil
}

// List returns all issues in insertion order.
func (s *IssueService) List(ctx context.Context) ([]dom.Issue, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Issue), nil
	}
	return s.repo.List(ctx)
}

// Stats returns per-status issue counts. Total equals pending plus resolved
// only while every issue carries one of those two statuses.
func (s *IssueService) Stats(ctx context.Context) (dom.Stats, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("stats", func() (interface{}, error) {
			if stats, err := s.cache.GetStats(ctx); err == nil && stats != nil {
				return *stats, nil
			}
			stats, err := s.repo.CountByStatus(ctx)
			if err != nil {
				return dom.Stats{}, err
			}
			_ = s.cache.SetStats(ctx, stats)
			return stats, nil
		})
		if err != nil {
			return dom.Stats{}, err
		}
		return v.(dom.Stats), nil
	}
	return s.repo.CountByStatus(ctx)
}

// Update overwrites all mutable fields of the issue. An unknown id is a no-op.
func (s *IssueService) Update(ctx context.Context, id int64, issueText, category, assignee, status string) error {
	err := s.repo.Update(ctx, id, dom.Issue{
		IssueText: strings.TrimSpace(issueText),
		Category:  strings.TrimSpace(category),
		Assignee:  strings.TrimSpace(assignee),
		Status:    strings.TrimSpace(status),
	})
	if err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Delete removes the issue. An unknown id is a no-op.
func (s *IssueService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *IssueService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
