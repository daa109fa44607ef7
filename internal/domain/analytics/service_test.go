package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"activityservice/internal/domain"
	"activityservice/internal/domain/analytics"
	"activityservice/internal/domain/daterange"
)

type gatewayFake struct {
	profile     analytics.Profile
	profileErr  error
	commitStats analytics.CommitStats
	prs         []analytics.PullRequest
	issues      []analytics.Issue

	commitCalls []daterange.Range
	issueCalls  []daterange.Range
}

func (g *gatewayFake) User(ctx context.Context, uid string) (analytics.Profile, error) {
	return g.profile, g.profileErr
}

func (g *gatewayFake) OrgMembers(ctx context.Context, org string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (g *gatewayFake) OrgRepos(ctx context.Context, org string) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}

func (g *gatewayFake) CommitStats(ctx context.Context, uid string, r daterange.Range) (analytics.CommitStats, error) {
	g.commitCalls = append(g.commitCalls, r)
	return g.commitStats, nil
}

func (g *gatewayFake) SearchPullRequests(ctx context.Context, uid string, r daterange.Range) ([]analytics.PullRequest, error) {
	return g.prs, nil
}

func (g *gatewayFake) SearchIssues(ctx context.Context, uid string, r daterange.Range) ([]analytics.Issue, error) {
	g.issueCalls = append(g.issueCalls, r)
	return g.issues, nil
}

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 10, 0, 0, 0, time.UTC) }
}

func TestProfileLinks(t *testing.T) {
	gw := &gatewayFake{profile: analytics.Profile{
		HTMLURL:  "https://github.com/alice",
		ReposURL: "https://api.github.com/users/alice/repos",
	}}
	svc := analytics.NewService(gw, gw, fixedNow(2024, time.July, 1))

	links, err := svc.ProfileLinks(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ProfileLinks: %v", err)
	}
	if links.ProfileURL != "https://github.com/alice" {
		t.Fatalf("profile url = %q", links.ProfileURL)
	}
	if links.ReposURL != "https://api.github.com/users/alice/repos" {
		t.Fatalf("repos url = %q", links.ReposURL)
	}
}

func TestProfileLinks_UserError(t *testing.T) {
	gw := &gatewayFake{profileErr: domain.NotFound("invalid uid ghost")}
	svc := analytics.NewService(gw, gw, fixedNow(2024, time.July, 1))

	_, err := svc.ProfileLinks(context.Background(), "ghost")
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestCommitStats_DefaultRange(t *testing.T) {
	gw := &gatewayFake{}
	svc := analytics.NewService(gw, gw, fixedNow(2024, time.July, 1))

	if _, err := svc.CommitStats(context.Background(), "alice", "", ""); err != nil {
		t.Fatalf("CommitStats: %v", err)
	}
	if len(gw.commitCalls) != 1 {
		t.Fatalf("expected one gateway call, got %d", len(gw.commitCalls))
	}
	r := gw.commitCalls[0]
	if r.Start != "2024-06-01" || r.End != "2024-11-14" {
		t.Fatalf("resolved range = %+v", r)
	}
}

func TestCommitStats_ExplicitRange(t *testing.T) {
	gw := &gatewayFake{}
	svc := analytics.NewService(gw, gw, fixedNow(2024, time.March, 20))

	if _, err := svc.CommitStats(context.Background(), "alice", "2024-01-01", "2024-01-31"); err != nil {
		t.Fatalf("CommitStats: %v", err)
	}
	r := gw.commitCalls[0]
	if r.Start != "2024-01-01" || r.End != "2024-01-31" {
		t.Fatalf("explicit range not passed through: %+v", r)
	}
}

func TestCommitStats_OutOfRange(t *testing.T) {
	gw := &gatewayFake{}
	svc := analytics.NewService(gw, gw, fixedNow(2024, time.March, 20))

	_, err := svc.CommitStats(context.Background(), "alice", "", "")
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeDateOutOfRange {
		t.Fatalf("expected DATE_OUT_OF_RANGE, got %v", err)
	}
	if len(gw.commitCalls) != 0 {
		t.Fatalf("gateway must not be called when range resolution fails")
	}
}

func TestReceivedIssueComments_SumsTotals(t *testing.T) {
	gw := &gatewayFake{issues: []analytics.Issue{
		{Title: "a", CommentCount: 3},
		{Title: "b", CommentCount: 0},
		{Title: "c", CommentCount: 4},
	}}
	svc := analytics.NewService(gw, gw, fixedNow(2024, time.July, 1))

	total, err := svc.ReceivedIssueComments(context.Background(), "alice", "", "")
	if err != nil {
		t.Fatalf("ReceivedIssueComments: %v", err)
	}
	if total != 7 {
		t.Fatalf("total = %d, want 7", total)
	}
}

func TestIssueCommentStats_ReshapesToThreads(t *testing.T) {
	gw := &gatewayFake{issues: []analytics.Issue{
		{
			Title:    "bug",
			URL:      "https://github.com/o/r/issues/1",
			Author:   "alice",
			Comments: []analytics.Comment{{Author: "bob", Body: "fixed"}},
		},
	}}
	svc := analytics.NewService(gw, gw, fixedNow(2024, time.July, 1))

	threads, err := svc.IssueCommentStats(context.Background(), "alice", "", "")
	if err != nil {
		t.Fatalf("IssueCommentStats: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("threads = %d, want 1", len(threads))
	}
	if threads[0].Title != "bug" || len(threads[0].Comments) != 1 {
		t.Fatalf("thread = %+v", threads[0])
	}
}

func TestAdminStats_UseAdminGateway(t *testing.T) {
	gw := &gatewayFake{}
	admin := &gatewayFake{}
	svc := analytics.NewService(gw, admin, fixedNow(2024, time.July, 1))

	if _, err := svc.AdminCommitStats(context.Background(), "bob", "", ""); err != nil {
		t.Fatalf("AdminCommitStats: %v", err)
	}
	if _, err := svc.AdminIssueStats(context.Background(), "bob", "", ""); err != nil {
		t.Fatalf("AdminIssueStats: %v", err)
	}
	if len(gw.commitCalls) != 0 || len(gw.issueCalls) != 0 {
		t.Fatalf("admin calls must not hit the plain gateway")
	}
	if len(admin.commitCalls) != 1 || len(admin.issueCalls) != 1 {
		t.Fatalf("admin gateway calls = %d/%d", len(admin.commitCalls), len(admin.issueCalls))
	}
}
