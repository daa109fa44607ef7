package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GitHubOrgMembers(c *gin.Context) {
	raw, err := h.Analytics.OrgMembers(c.Request.Context(), c.Param("org"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *Handler) GitHubOrgRepos(c *gin.Context) {
	raw, err := h.Analytics.OrgRepos(c.Request.Context(), c.Param("org"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
