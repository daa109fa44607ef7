package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"activityservice/internal/app/dto"
)

func (h *Handler) KasmCreateUser(c *gin.Context) {
	var body dto.CreateKasmUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Username == "" || body.Password == "" {
		h.badRequest(c, "username and password are required")
		return
	}

	if err := h.Provision.CreateUser(c.Request.Context(), body.Name, body.Username, body.Password); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.KasmStatusResponse{Username: body.Username, Status: "created"})
}

func (h *Handler) KasmDeleteUser(c *gin.Context) {
	username := c.Param("username")

	if err := h.Provision.DeleteUser(c.Request.Context(), username); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.KasmStatusResponse{Username: username, Status: "deleted"})
}

func (h *Handler) KasmUpdateGroup(c *gin.Context) {
	username := c.Param("username")

	var body dto.UpdateKasmGroupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Group == "" {
		h.badRequest(c, "group is required")
		return
	}

	if err := h.Provision.UpdateGroup(c.Request.Context(), username, body.Group); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.KasmStatusResponse{Username: username, Status: "group updated"})
}

func (h *Handler) KasmUpdatePassword(c *gin.Context) {
	username := c.Param("username")

	var body dto.UpdateKasmPasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "invalid JSON")
		return
	}
	if body.Password == "" {
		h.badRequest(c, "password is required")
		return
	}

	if err := h.Provision.UpdatePassword(c.Request.Context(), username, body.Password); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.KasmStatusResponse{Username: username, Status: "password updated"})
}
