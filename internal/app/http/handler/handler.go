package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"activityservice/internal/domain/analytics"
	"activityservice/internal/domain/provision"
)

type Handler struct {
	Analytics analytics.Service
	Provision provision.Service
	Log       *zap.Logger
}

func New(analyticsSvc analytics.Service, provisionSvc provision.Service, log *zap.Logger) *Handler {
	return &Handler{
		Analytics: analyticsSvc,
		Provision: provisionSvc,
		Log:       log,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
