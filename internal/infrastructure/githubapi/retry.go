package githubapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"activityservice/internal/domain"
	"activityservice/internal/domain/analytics"
	"activityservice/internal/domain/daterange"
)

const (
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"

	retryBackoffBase = 5 * time.Second
	retryJitter      = time.Second
	retryMaxAttempts = 3
	rateLimitBuffer  = 5 * time.Second
)

// retryingGateway wraps the client's GraphQL reads with bounded
// retries: exponential backoff on upstream 500s, and a wait until the
// advertised reset when the rate limit is exhausted. REST lookups are
// inherited untouched.
type retryingGateway struct {
	*Client

	backoffBase time.Duration
	jitter      time.Duration
	maxRetries  uint64
	buffer      time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	now         func() time.Time
}

var _ analytics.Gateway = (*retryingGateway)(nil)

// WithRetry returns a gateway view of the client whose GraphQL reads
// retry transient upstream failures.
func (c *Client) WithRetry() analytics.Gateway {
	return &retryingGateway{
		Client:      c,
		backoffBase: retryBackoffBase,
		jitter:      retryJitter,
		maxRetries:  retryMaxAttempts,
		buffer:      rateLimitBuffer,
		sleep:       sleepContext,
		now:         time.Now,
	}
}

func (g *retryingGateway) CommitStats(ctx context.Context, uid string, r daterange.Range) (analytics.CommitStats, error) {
	return g.commitStats(ctx, uid, r, g.graphqlWithRetry)
}

func (g *retryingGateway) SearchPullRequests(ctx context.Context, uid string, r daterange.Range) ([]analytics.PullRequest, error) {
	return g.searchPullRequests(ctx, uid, r, g.graphqlWithRetry)
}

func (g *retryingGateway) SearchIssues(ctx context.Context, uid string, r daterange.Range) ([]analytics.Issue, error) {
	return g.searchIssues(ctx, uid, r, g.graphqlWithRetry)
}

func (g *retryingGateway) graphqlWithRetry(ctx context.Context, query string, vars map[string]any, out any) error {
	backoff := retry.NewExponential(g.backoffBase)
	if g.jitter > 0 {
		backoff = retry.WithJitter(g.jitter, backoff)
	}
	backoff = retry.WithMaxRetries(g.maxRetries, backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		status, hdr, err := g.doGraphQL(ctx, query, vars, out)
		if err == nil {
			return nil
		}

		switch {
		case status == http.StatusInternalServerError:
			g.log.Warn("github graphql 500, retrying", zap.Error(err))
			return retry.RetryableError(err)

		case status == http.StatusForbidden && hdr.Get(headerRateLimitRemaining) == "0":
			if waitErr := g.waitForReset(ctx, hdr); waitErr != nil {
				return errors.Join(err, waitErr)
			}
			return retry.RetryableError(err)

		default:
			return err
		}
	})
}

func (g *retryingGateway) waitForReset(ctx context.Context, hdr http.Header) error {
	resetUnix, err := strconv.ParseInt(hdr.Get(headerRateLimitReset), 10, 64)
	if err != nil {
		return domain.Upstream("github rate limited without a usable reset header", http.StatusForbidden)
	}

	wait := time.Unix(resetUnix, 0).Sub(g.now()) + g.buffer
	if wait < 0 {
		wait = 0
	}

	g.log.Warn("github rate limit exhausted, waiting for reset",
		zap.Duration("wait", wait),
	)
	return g.sleep(ctx, wait)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
