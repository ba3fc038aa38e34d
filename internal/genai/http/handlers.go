package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ProjectMate/go-project-backend/internal/errs"
	"github.com/ProjectMate/go-project-backend/internal/genai"
)

type Handler struct {
	client *genai.Client
}

func NewHandler(client *genai.Client) *Handler {
	return &Handler{client: client}
}

// Register attaches the generation routes to the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.generate)
	rg.POST("/stream", h.generateStream)
	rg.GET("/status", h.status)
}

type promptReq struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) generate(c *gin.Context) {
	var req promptReq
	_ = c.ShouldBindJSON(&req)
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "prompt is required"})
		return
	}

	text, err := h.client.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(errs.StatusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "text": text})
}

func (h *Handler) generateStream(c *gin.Context) {
	var req promptReq
	_ = c.ShouldBindJSON(&req)
	if req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "prompt is required"})
		return
	}
	if err := h.client.Ready(); err != nil {
		c.JSON(errs.StatusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	err := h.client.GenerateStream(ctx, req.Prompt, func(text string) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", jsonString(text))
		flusher.Flush()
		return nil
	})
	if err != nil {
		// Headers are already out; log and terminate the stream.
		log.Error().Err(err).Msg("generate stream aborted")
		if ctx.Err() != nil {
			return
		}
	}

	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	flusher.Flush()
}

func (h *Handler) status(c *gin.Context) {
	ok, msg := h.client.Status(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
