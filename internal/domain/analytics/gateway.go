package analytics

import (
	"context"
	"encoding/json"

	"activityservice/internal/domain/daterange"
)

// Gateway is the outbound GitHub surface the façade composes. The
// production implementation lives in infrastructure/githubapi; a
// second, retrying implementation backs the admin paths.
type Gateway interface {
	User(ctx context.Context, uid string) (Profile, error)
	OrgMembers(ctx context.Context, org string) (json.RawMessage, error)
	OrgRepos(ctx context.Context, org string) (json.RawMessage, error)
	CommitStats(ctx context.Context, uid string, r daterange.Range) (CommitStats, error)
	SearchPullRequests(ctx context.Context, uid string, r daterange.Range) ([]PullRequest, error)
	SearchIssues(ctx context.Context, uid string, r daterange.Range) ([]Issue, error)
}
