package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"activityservice/internal/app/http/handler"
	"activityservice/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	analytics := r.Group("/api/analytics")
	{
		user := analytics.Group("/github/user", middleware.RequireUser())
		user.GET("", h.GitHubProfile)
		user.GET("/profile_links", h.GitHubProfileLinks)
		user.GET("/commits", h.GitHubCommits)
		user.GET("/prs", h.GitHubPRs)
		user.GET("/issues", h.GitHubIssues)
		user.GET("/issue_comments", h.GitHubIssueComments)
		user.GET("/received_issue_comments", h.GitHubReceivedIssueComments)

		analytics.GET("/github/org/:org/users", h.GitHubOrgMembers)
		analytics.GET("/github/org/:org/repos", h.GitHubOrgRepos)

		admin := analytics.Group("", middleware.RequireUser(), middleware.RequireAdmin())
		admin.POST("/commits/:uid", h.AdminCommits)
		admin.POST("/issues/:uid", h.AdminIssues)
	}

	kasm := r.Group("/api/kasm", middleware.RequireUser(), middleware.RequireAdmin())
	{
		kasm.POST("/users", h.KasmCreateUser)
		kasm.DELETE("/users/:username", h.KasmDeleteUser)
		kasm.PUT("/users/:username/group", h.KasmUpdateGroup)
		kasm.PUT("/users/:username/password", h.KasmUpdatePassword)
	}

	return r
}
