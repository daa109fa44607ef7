package analytics

import (
	"context"
	"encoding/json"
	"time"

	"activityservice/internal/domain/daterange"
)

type Service interface {
	Profile(ctx context.Context, uid string) (Profile, error)
	ProfileLinks(ctx context.Context, uid string) (ProfileLinks, error)
	CommitStats(ctx context.Context, uid, start, end string) (CommitStats, error)
	PRStats(ctx context.Context, uid, start, end string) ([]PullRequest, error)
	IssueStats(ctx context.Context, uid, start, end string) ([]Issue, error)
	IssueCommentStats(ctx context.Context, uid, start, end string) ([]IssueComments, error)
	ReceivedIssueComments(ctx context.Context, uid, start, end string) (int, error)
	OrgMembers(ctx context.Context, org string) (json.RawMessage, error)
	OrgRepos(ctx context.Context, org string) (json.RawMessage, error)

	// Admin variants serve arbitrary users and go through the
	// retrying gateway.
	AdminCommitStats(ctx context.Context, uid, start, end string) (CommitStats, error)
	AdminIssueStats(ctx context.Context, uid, start, end string) ([]Issue, error)
}

type service struct {
	gw    Gateway
	admin Gateway
	now   func() time.Time
}

// NewService builds the analytics façade. admin is the gateway used
// for the admin endpoints; pass the retrying variant there.
func NewService(gw, admin Gateway, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{gw: gw, admin: admin, now: now}
}

func (s *service) resolveRange(start, end string) (daterange.Range, error) {
	return daterange.Resolve(start, end, s.now())
}

func (s *service) Profile(ctx context.Context, uid string) (Profile, error) {
	return s.gw.User(ctx, uid)
}

func (s *service) ProfileLinks(ctx context.Context, uid string) (ProfileLinks, error) {
	p, err := s.gw.User(ctx, uid)
	if err != nil {
		return ProfileLinks{}, err
	}
	return ProfileLinks{ProfileURL: p.HTMLURL, ReposURL: p.ReposURL}, nil
}

func (s *service) CommitStats(ctx context.Context, uid, start, end string) (CommitStats, error) {
	r, err := s.resolveRange(start, end)
	if err != nil {
		return CommitStats{}, err
	}
	return s.gw.CommitStats(ctx, uid, r)
}

func (s *service) PRStats(ctx context.Context, uid, start, end string) ([]PullRequest, error) {
	r, err := s.resolveRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.gw.SearchPullRequests(ctx, uid, r)
}

func (s *service) IssueStats(ctx context.Context, uid, start, end string) ([]Issue, error) {
	r, err := s.resolveRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.gw.SearchIssues(ctx, uid, r)
}

func (s *service) IssueCommentStats(ctx context.Context, uid, start, end string) ([]IssueComments, error) {
	issues, err := s.IssueStats(ctx, uid, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]IssueComments, 0, len(issues))
	for _, is := range issues {
		out = append(out, IssueComments{
			Title:    is.Title,
			URL:      is.URL,
			Comments: is.Comments,
		})
	}
	return out, nil
}

func (s *service) ReceivedIssueComments(ctx context.Context, uid, start, end string) (int, error) {
	issues, err := s.IssueStats(ctx, uid, start, end)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, is := range issues {
		total += is.CommentCount
	}
	return total, nil
}

func (s *service) OrgMembers(ctx context.Context, org string) (json.RawMessage, error) {
	return s.gw.OrgMembers(ctx, org)
}

func (s *service) OrgRepos(ctx context.Context, org string) (json.RawMessage, error) {
	return s.gw.OrgRepos(ctx, org)
}

func (s *service) AdminCommitStats(ctx context.Context, uid, start, end string) (CommitStats, error) {
	r, err := s.resolveRange(start, end)
	if err != nil {
		return CommitStats{}, err
	}
	return s.admin.CommitStats(ctx, uid, r)
}

func (s *service) AdminIssueStats(ctx context.Context, uid, start, end string) ([]Issue, error) {
	r, err := s.resolveRange(start, end)
	if err != nil {
		return nil, err
	}
	return s.admin.SearchIssues(ctx, uid, r)
}
