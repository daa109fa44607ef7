package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Admin routes fetch stats for an arbitrary user; they go through the
// retrying gateway so a burst of upstream 500s or a drained rate
// limit does not fail the report.

func (h *Handler) AdminCommits(c *gin.Context) {
	uid := c.Param("uid")
	if uid == "" {
		h.badRequest(c, "uid is required")
		return
	}
	r := dateRange(c)

	stats, err := h.Analytics.AdminCommitStats(c.Request.Context(), uid, r.StartDate, r.EndDate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCommitStatsResponse(stats))
}

func (h *Handler) AdminIssues(c *gin.Context) {
	uid := c.Param("uid")
	if uid == "" {
		h.badRequest(c, "uid is required")
		return
	}
	r := dateRange(c)

	issues, err := h.Analytics.AdminIssueStats(c.Request.Context(), uid, r.StartDate, r.EndDate)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toIssueStatsResponse(issues))
}
