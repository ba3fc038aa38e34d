package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ProjectMate/go-project-backend/internal/assistant"
	"github.com/ProjectMate/go-project-backend/internal/errs"
)

type Handler struct {
	assistant *assistant.Assistant
}

func NewHandler(a *assistant.Assistant) *Handler {
	return &Handler{assistant: a}
}

// Register attaches the assistant route to the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/project-assistant", h.run)
}

type runReq struct {
	UserPrompt string `json:"userPrompt"`
}

func (h *Handler) run(c *gin.Context) {
	var req runReq
	if err := c.ShouldBindJSON(&req); err != nil || req.UserPrompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "prompt required"})
		return
	}

	res, err := h.assistant.Run(c.Request.Context(), req.UserPrompt)
	if err != nil {
		c.JSON(errs.StatusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
