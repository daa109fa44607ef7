// Package githubapi implements the analytics gateway on top of the
// GitHub REST and GraphQL APIs.
package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"activityservice/internal/domain"
	"activityservice/internal/domain/analytics"
	"activityservice/internal/domain/daterange"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	BaseURL    string
	GraphQLURL string
	Token      string
	Timeout    time.Duration
}

type Client struct {
	baseURL    string
	graphqlURL string
	token      string
	http       *http.Client
	log        *zap.Logger
}

var _ analytics.Gateway = (*Client)(nil)

func New(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		graphqlURL: cfg.GraphQLURL,
		token:      cfg.Token,
		http:       &http.Client{Timeout: timeout},
		log:        log,
	}
}

// offlineProfile is served when no token is configured, so a tokenless
// dev instance still answers profile lookups. Org listings and GraphQL
// queries do require a token; see OrgMembers and doGraphQL.
var offlineProfile = analytics.Profile{
	Offline: true,
	Raw:     json.RawMessage(`{"message":"GITHUB_TOKEN not set"}`),
}

func (c *Client) User(ctx context.Context, uid string) (analytics.Profile, error) {
	if c.token == "" {
		return offlineProfile, nil
	}

	body, status, err := c.get(ctx, "/users/"+uid)
	if err != nil {
		return analytics.Profile{}, err
	}
	switch {
	case status == http.StatusNotFound:
		return analytics.Profile{}, domain.NotFound("invalid uid " + uid)
	case status != http.StatusOK:
		return analytics.Profile{}, domain.Upstream("github api failed to fetch user data", status)
	}

	var links struct {
		HTMLURL  string `json:"html_url"`
		ReposURL string `json:"repos_url"`
	}
	if err := json.Unmarshal(body, &links); err != nil {
		return analytics.Profile{}, fmt.Errorf("decode github user %s: %w", uid, err)
	}

	return analytics.Profile{
		HTMLURL:  links.HTMLURL,
		ReposURL: links.ReposURL,
		Raw:      body,
	}, nil
}

func (c *Client) OrgMembers(ctx context.Context, org string) (json.RawMessage, error) {
	return c.orgList(ctx, "/orgs/"+org+"/members", "github api failed to fetch organization members")
}

func (c *Client) OrgRepos(ctx context.Context, org string) (json.RawMessage, error) {
	return c.orgList(ctx, "/orgs/"+org+"/repos", "github api failed to fetch organization repositories")
}

func (c *Client) orgList(ctx context.Context, path, failMsg string) (json.RawMessage, error) {
	if c.token == "" {
		return nil, domain.ConfigMissing("GITHUB_TOKEN not set")
	}

	body, status, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, domain.NotFound("unknown organization")
	case status != http.StatusOK:
		return nil, domain.Upstream(failMsg, status)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "token "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("github request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read github response %s: %w", path, err)
	}
	return body, resp.StatusCode, nil
}

// gqlFunc abstracts the GraphQL transport so the same result mapping
// serves both the plain client and the retrying gateway.
type gqlFunc func(ctx context.Context, query string, vars map[string]any, out any) error

func (c *Client) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	_, _, err := c.doGraphQL(ctx, query, vars, out)
	return err
}

func (c *Client) doGraphQL(ctx context.Context, query string, vars map[string]any, out any) (int, http.Header, error) {
	if c.token == "" {
		return 0, nil, domain.ConfigMissing("GITHUB_TOKEN not set")
	}

	payload, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("github graphql request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return resp.StatusCode, resp.Header, domain.Upstream("github api failed to fetch data", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, resp.Header, fmt.Errorf("decode github graphql response: %w", err)
	}
	return resp.StatusCode, resp.Header, nil
}

func (c *Client) CommitStats(ctx context.Context, uid string, r daterange.Range) (analytics.CommitStats, error) {
	return c.commitStats(ctx, uid, r, c.graphql)
}

// commitStats runs the summary and per-repository queries. A failure
// of either degrades that piece to zero/empty instead of failing the
// aggregate.
func (c *Client) commitStats(ctx context.Context, uid string, r daterange.Range, do gqlFunc) (analytics.CommitStats, error) {
	from, to, err := isoBounds(r)
	if err != nil {
		return analytics.CommitStats{}, err
	}
	vars := map[string]any{"login": uid, "from": from, "to": to}

	stats := analytics.CommitStats{ByRepository: []analytics.RepositoryCommits{}}

	var total totalCommitsResponse
	if err := do(ctx, totalCommitsQuery, vars, &total); err != nil {
		c.log.Warn("commit summary query failed", zap.String("uid", uid), zap.Error(err))
	} else if total.Data.User != nil {
		stats.TotalCommitContributions = total.Data.User.ContributionsCollection.TotalCommitContributions
	}

	var detailed commitsByRepositoryResponse
	if err := do(ctx, commitsByRepositoryQuery, vars, &detailed); err != nil {
		c.log.Warn("commit breakdown query failed", zap.String("uid", uid), zap.Error(err))
	} else if detailed.Data.User != nil {
		for _, byRepo := range detailed.Data.User.ContributionsCollection.CommitContributionsByRepository {
			rc := analytics.RepositoryCommits{
				Repository: byRepo.Repository.NameWithOwner,
				Commits:    make([]analytics.CommitWindow, 0, len(byRepo.Contributions.Nodes)),
			}
			for _, n := range byRepo.Contributions.Nodes {
				rc.Commits = append(rc.Commits, analytics.CommitWindow{
					Count:      n.CommitCount,
					OccurredAt: n.OccurredAt,
				})
			}
			stats.ByRepository = append(stats.ByRepository, rc)
		}
	}

	return stats, nil
}

func (c *Client) SearchPullRequests(ctx context.Context, uid string, r daterange.Range) ([]analytics.PullRequest, error) {
	return c.searchPullRequests(ctx, uid, r, c.graphql)
}

func (c *Client) searchPullRequests(ctx context.Context, uid string, r daterange.Range, do gqlFunc) ([]analytics.PullRequest, error) {
	vars := map[string]any{
		"query": fmt.Sprintf("type:pr author:%s created:%s..%s", uid, r.Start, r.End),
	}

	var resp pullRequestSearchResponse
	if err := do(ctx, pullRequestSearchQuery, vars, &resp); err != nil {
		return nil, err
	}

	prs := make([]analytics.PullRequest, 0, len(resp.Data.Search.Edges))
	for _, e := range resp.Data.Search.Edges {
		pr := analytics.PullRequest{
			Title:      e.Node.Title,
			URL:        e.Node.URL,
			CreatedAt:  e.Node.CreatedAt,
			Repository: e.Node.Repository.NameWithOwner,
			Comments:   mapComments(e.Node.Comments.Nodes),
		}
		if e.Node.Author != nil {
			pr.Author = e.Node.Author.Login
		}
		prs = append(prs, pr)
	}
	return prs, nil
}

func (c *Client) SearchIssues(ctx context.Context, uid string, r daterange.Range) ([]analytics.Issue, error) {
	return c.searchIssues(ctx, uid, r, c.graphql)
}

func (c *Client) searchIssues(ctx context.Context, uid string, r daterange.Range, do gqlFunc) ([]analytics.Issue, error) {
	vars := map[string]any{
		"query": fmt.Sprintf("type:issue author:%s created:%s..%s", uid, r.Start, r.End),
	}

	var resp issueSearchResponse
	if err := do(ctx, issueSearchQuery, vars, &resp); err != nil {
		return nil, err
	}

	issues := make([]analytics.Issue, 0, len(resp.Data.Search.Edges))
	for _, e := range resp.Data.Search.Edges {
		is := analytics.Issue{
			Title:        e.Node.Title,
			URL:          e.Node.URL,
			CreatedAt:    e.Node.CreatedAt,
			Repository:   e.Node.Repository.NameWithOwner,
			CommentCount: e.Node.Comments.TotalCount,
			Comments:     mapComments(e.Node.Comments.Nodes),
		}
		if e.Node.Author != nil {
			is.Author = e.Node.Author.Login
		}
		issues = append(issues, is)
	}
	return issues, nil
}

func mapComments(nodes []commentNode) []analytics.Comment {
	comments := make([]analytics.Comment, 0, len(nodes))
	for _, n := range nodes {
		cm := analytics.Comment{Body: n.Body}
		if n.Author != nil {
			cm.Author = n.Author.Login
		}
		comments = append(comments, cm)
	}
	return comments
}

// isoBounds widens YYYY-MM-DD bounds to the RFC3339 timestamps the
// contributionsCollection API expects.
func isoBounds(r daterange.Range) (string, string, error) {
	from, err := time.Parse(daterange.Layout, r.Start)
	if err != nil {
		return "", "", fmt.Errorf("parse start date %q: %w", r.Start, err)
	}
	to, err := time.Parse(daterange.Layout, r.End)
	if err != nil {
		return "", "", fmt.Errorf("parse end date %q: %w", r.End, err)
	}
	const iso = "2006-01-02T15:04:05Z"
	return from.Format(iso), to.Format(iso), nil
}
