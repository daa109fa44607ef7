package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"activityservice/internal/app/dto"
	"activityservice/internal/app/http/middleware"
	"activityservice/internal/domain/analytics"
)

// dateRange reads the optional JSON body. An absent or unreadable body
// leaves both bounds empty, which makes the trimester defaults apply.
func dateRange(c *gin.Context) dto.DateRangeRequest {
	var body dto.DateRangeRequest
	_ = c.ShouldBindJSON(&body)
	return body
}

func (h *Handler) callerUID(c *gin.Context) (string, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: dto.Error{Code: "UNAUTHORIZED", Message: "caller identity is required"},
		})
		return "", false
	}
	return id.UID, true
}

func (h *Handler) GitHubProfile(c *gin.Context) {
	uid, ok := h.callerUID(c)
	if !ok {
		return
	}

	p, err := h.Analytics.Profile(c.Request.Context(), uid)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", p.Raw)
}

func (h *Handler) GitHubProfileLinks(c *gin.Context) {
	uid, ok := h.callerUID(c)
	if !ok {
		return
	}

	links, err := h.Analytics.ProfileLinks(c.Request.Context(), uid)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProfileLinks{
		ProfileURL: links.ProfileURL,
		ReposURL:   links.ReposURL,
	})
}

func (h *Handler) GitHubCommits(c *gin.Context) {
	uid, ok := h.callerUID(c)
	if !ok {
		return
	}
	r := dateRange(c)

	stats, err := h.Analytics.CommitStats(c.Request.Context(), uid, r.StartDate, r.EndDate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommitStatsResponse(stats))
}

func (h *Handler) GitHubPRs(c *gin.Context) {
	uid, ok := h.callerUID(c)
	if !ok {
		return
	}
	r := dateRange(c)

	prs, err := h.Analytics.PRStats(c.Request.Context(), uid, r.StartDate, r.EndDate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPRStatsResponse(prs))
}

func (h *Handler) GitHubIssues(c *gin.Context) {
	uid, ok := h.callerUID(c)
	if !ok {
		return
	}
	r := dateRange(c)

	issues, err := h.Analytics.IssueStats(c.Request.Context(), uid, r.StartDate, r.EndDate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toIssueStatsResponse(issues))
}

func (h *Handler) GitHubIssueComments(c *gin.Context) {
	uid, ok := h.callerUID(c)
	if !ok {
		return
	}
	r := dateRange(c)

	threads, err := h.Analytics.IssueCommentStats(c.Request.Context(), uid, r.StartDate, r.EndDate)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := dto.IssueCommentsResponse{Issues: make([]dto.IssueCommentThread, 0, len(threads))}
	for _, t := range threads {
		resp.Issues = append(resp.Issues, dto.IssueCommentThread{
			Title:    t.Title,
			URL:      t.URL,
			Comments: toComments(t.Comments),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GitHubReceivedIssueComments(c *gin.Context) {
	uid, ok := h.callerUID(c)
	if !ok {
		return
	}
	r := dateRange(c)

	total, err := h.Analytics.ReceivedIssueComments(c.Request.Context(), uid, r.StartDate, r.EndDate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReceivedCommentsResponse{TotalReceivedComments: total})
}

func toComments(in []analytics.Comment) []dto.Comment {
	out := make([]dto.Comment, 0, len(in))
	for _, cm := range in {
		out = append(out, dto.Comment{Author: cm.Author, Body: cm.Body})
	}
	return out
}

func toCommitStatsResponse(stats analytics.CommitStats) dto.CommitStatsResponse {
	resp := dto.CommitStatsResponse{
		TotalCommitContributions: stats.TotalCommitContributions,
		DetailsOfCommits:         make([]dto.RepositoryCommits, 0, len(stats.ByRepository)),
	}
	for _, rc := range stats.ByRepository {
		windows := make([]dto.CommitWindow, 0, len(rc.Commits))
		for _, w := range rc.Commits {
			windows = append(windows, dto.CommitWindow{CommitCount: w.Count, OccurredAt: w.OccurredAt})
		}
		resp.DetailsOfCommits = append(resp.DetailsOfCommits, dto.RepositoryCommits{
			Repository: rc.Repository,
			Commits:    windows,
		})
	}
	return resp
}

func toPRStatsResponse(prs []analytics.PullRequest) dto.PRStatsResponse {
	resp := dto.PRStatsResponse{PullRequests: make([]dto.PullRequest, 0, len(prs))}
	for _, pr := range prs {
		resp.PullRequests = append(resp.PullRequests, dto.PullRequest{
			Title:      pr.Title,
			URL:        pr.URL,
			CreatedAt:  pr.CreatedAt,
			Repository: pr.Repository,
			Author:     pr.Author,
			Comments:   toComments(pr.Comments),
		})
	}
	return resp
}

func toIssueStatsResponse(issues []analytics.Issue) dto.IssueStatsResponse {
	resp := dto.IssueStatsResponse{Issues: make([]dto.Issue, 0, len(issues))}
	for _, is := range issues {
		resp.Issues = append(resp.Issues, dto.Issue{
			Title:        is.Title,
			URL:          is.URL,
			CreatedAt:    is.CreatedAt,
			Repository:   is.Repository,
			Author:       is.Author,
			CommentCount: is.CommentCount,
			Comments:     toComments(is.Comments),
		})
	}
	return resp
}
