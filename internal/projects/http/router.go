package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/projects", h.list)
	r.POST("/projects", h.create)
	r.GET("/projects/:id", h.get)
	r.PATCH("/projects/:id", h.patch)
	r.GET("/templates", h.templates)
}
