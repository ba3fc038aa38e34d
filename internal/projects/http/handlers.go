package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ProjectMate/go-project-backend/internal/errs"
	"github.com/ProjectMate/go-project-backend/internal/projects/service"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(errs.StatusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(errs.StatusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	// Bind into a loose map: unknown fields pass through untouched and
	// wrong-typed optional fields are ignored instead of failing the bind.
	body := map[string]any{}
	_ = c.ShouldBindJSON(&body)

	p, err := h.svc.Create(c.Request.Context(), body)
	if err != nil {
		c.JSON(errs.StatusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) patch(c *gin.Context) {
	body := map[string]any{}
	_ = c.ShouldBindJSON(&body)

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		c.JSON(errs.StatusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) templates(c *gin.Context) {
	slugs, err := h.svc.Templates()
	if err != nil {
		c.JSON(errs.StatusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "templates": slugs})
}
