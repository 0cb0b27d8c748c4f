package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppriyankuu/replicated-log/internal/apierr"
	"github.com/ppriyankuu/replicated-log/internal/health"
	"github.com/ppriyankuu/replicated-log/internal/master"
)

// MasterHandler exposes the master's HTTP surface: GET/POST /messages and
// GET /health.
type MasterHandler struct {
	state *master.State
}

// NewMasterHandler creates a MasterHandler over state.
func NewMasterHandler(state *master.State) *MasterHandler {
	return &MasterHandler{state: state}
}

// Register mounts the master's routes on r.
func (h *MasterHandler) Register(r *gin.Engine) {
	r.GET("/messages", h.listMessages)
	r.POST("/messages", h.appendMessage)
	r.GET("/health", h.health)
}

func (h *MasterHandler) listMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.state.List()})
}

type appendRequest struct {
	Msg string `json:"msg"`
	W   *int   `json:"w"`
}

func (h *MasterHandler) appendMessage(c *gin.Context) {
	var body appendRequest
	if err := bindAppend(c, &body); err != nil {
		writeAPIError(c, apierr.New(http.StatusBadRequest, "Expected JSON with string field 'msg'"))
		return
	}

	w := h.state.N()
	if body.W != nil {
		w = *body.W
	}

	result, apiErr := h.state.AppendMessage(body.Msg, w)
	if apiErr != nil {
		writeAPIError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// bindAppend decodes the raw JSON body into a loosely-typed map first so
// a non-string "msg" (missing, null, number, …) is rejected the same way
// regardless of whether ShouldBindJSON's struct tags would have zeroed it
// silently.
func bindAppend(c *gin.Context, out *appendRequest) error {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		return err
	}
	msg, ok := raw["msg"].(string)
	if !ok {
		return errBadMsg
	}
	out.Msg = msg
	if wv, present := raw["w"]; present {
		wf, ok := wv.(float64)
		if !ok {
			return errBadMsg
		}
		wi := int(wf)
		out.W = &wi
	}
	return nil
}

var errBadMsg = apierr.New(http.StatusBadRequest, "Expected JSON with string field 'msg'")

func (h *MasterHandler) health(c *gin.Context) {
	statuses := make(map[string]gin.H, len(h.state.Peers()))
	all := h.state.Health().All()
	for _, peer := range h.state.Peers() {
		rec, ok := all[peer]
		if !ok {
			rec = health.Record{State: health.Healthy}
		}
		statuses[peer] = gin.H{
			"status":         rec.State,
			"last_heartbeat": rec.LastProbe,
			"failures":       rec.ConsecutiveFailures,
			"last_success":   rec.LastSuccess,
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"count":              h.state.Count(),
		"secondaries":        h.state.Peers(),
		"secondary_statuses": statuses,
	})
}

func writeAPIError(c *gin.Context, err *apierr.Error) {
	body := gin.H{"error": err.Message}
	if err.Detail != "" {
		body["detail"] = err.Detail
	}
	c.JSON(err.Status, body)
}
