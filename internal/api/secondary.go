package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppriyankuu/replicated-log/internal/apierr"
	"github.com/ppriyankuu/replicated-log/internal/secondary"
)

// SecondaryHandler exposes a secondary's HTTP surface: GET /messages,
// POST /replicate, and GET /health.
type SecondaryHandler struct {
	state *secondary.State
}

// NewSecondaryHandler creates a SecondaryHandler over state.
func NewSecondaryHandler(state *secondary.State) *SecondaryHandler {
	return &SecondaryHandler{state: state}
}

// Register mounts the secondary's routes on r.
func (h *SecondaryHandler) Register(r *gin.Engine) {
	r.GET("/messages", h.listMessages)
	r.POST("/replicate", h.replicate)
	r.GET("/health", h.health)
}

func (h *SecondaryHandler) listMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.state.List()})
}

func (h *SecondaryHandler) replicate(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		writeAPIError(c, apierr.New(http.StatusBadRequest, "Expected JSON with string field 'msg'"))
		return
	}
	msg, ok := raw["msg"].(string)
	if !ok {
		writeAPIError(c, apierr.New(http.StatusBadRequest, "Expected JSON with string field 'msg'"))
		return
	}
	var seq int64
	if sv, present := raw["seq"]; present {
		if sf, ok := sv.(float64); ok {
			seq = int64(sf)
		}
	}

	duplicate, apiErr := h.state.Replicate(seq, msg)
	if apiErr != nil {
		writeAPIError(c, apiErr)
		return
	}

	resp := gin.H{"status": "ok", "seq": seq}
	if duplicate {
		resp["duplicate"] = true
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SecondaryHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"count":    h.state.Count(),
		"delay_ms": h.state.Delay().Milliseconds(),
	})
}
