// Package ws provides the interactive WebSocket session: streaming build
// status plus runtime mutation messages that push back fresh state and
// render trees.
package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/engine"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/logging"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/monitoring"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/render"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/runtime"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origin policy is enforced by the CORS layer
	},
}

// Message is the client→server frame.
type Message struct {
	Type      string      `json:"type"`
	Message   string      `json:"message,omitempty"`
	Run       bool        `json:"run,omitempty"`
	SessionID string      `json:"sessionId,omitempty"`
	ActionIDs []string    `json:"actionIds,omitempty"`
	Key       string      `json:"key,omitempty"`
	Value     value.Value `json:"value,omitempty"`
}

// Handler manages WebSocket connections.
type Handler struct {
	engine   *engine.Engine
	runtimes *runtime.Manager
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewHandler creates the WebSocket handler.
func NewHandler(eng *engine.Engine, runtimes *runtime.Manager, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{engine: eng, runtimes: runtimes, log: log.Named("ws")}
}

// WithMetrics attaches connection metrics.
func (h *Handler) WithMetrics(m *monitoring.Metrics) *Handler {
	h.metrics = m
	return h
}

// HandleConnection upgrades and serves one connection. Messages are handled
// strictly in arrival order; a build blocks the connection until it
// resolves, matching the single-owner mutation model.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.WSConnections.Inc()
		defer h.metrics.WSConnections.Dec()
	}

	reqCtx := c.Request.Context()

	h.send(conn, gin.H{"type": "system", "message": "Connected to GenApp Engine"})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if h.metrics != nil {
			h.metrics.WSMessages.WithLabelValues(msg.Type).Inc()
		}

		switch msg.Type {
		case "build":
			h.handleBuild(conn, msg, reqCtx)
		case "dispatch":
			h.handleDispatch(conn, msg)
		case "write_binding":
			h.handleWriteBinding(conn, msg)
		case "ping":
			h.send(conn, gin.H{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type")
		}
	}
}

func (h *Handler) handleBuild(conn *websocket.Conn, msg Message, reqCtx context.Context) {
	ctx, cancel := context.WithTimeout(reqCtx, 3*time.Minute)
	defer cancel()

	res := h.engine.Build(ctx, msg.Message, func(ev engine.Event) {
		h.send(conn, gin.H{
			"type":     "build_status",
			"seq":      ev.Seq,
			"status":   ev.Status,
			"progress": ev.Progress,
		})
	})

	if res.Err != nil {
		h.send(conn, gin.H{"type": "build_failed", "error": res.Err.Error(), "notice": res.Notice})
		return
	}

	out := gin.H{
		"type":   "build_complete",
		"source": res.Source,
		"spec":   res.Spec,
	}
	if res.Notice != "" {
		out["notice"] = res.Notice
	}
	if res.Report != nil {
		out["report"] = res.Report
	}
	if msg.Run {
		session := h.runtimes.Open(res.Spec)
		out["session"] = snapshot(session)
		out["tree"] = render.Page(session.Runtime)
	}
	h.send(conn, out)
}

func (h *Handler) handleDispatch(conn *websocket.Conn, msg Message) {
	session, ok := h.runtimes.Get(msg.SessionID)
	if !ok {
		h.sendError(conn, "session not found")
		return
	}

	session.Runtime.Dispatch(msg.ActionIDs)
	if h.metrics != nil {
		h.metrics.DispatchesTotal.WithLabelValues("ws").Inc()
	}
	h.pushState(conn, session)
}

func (h *Handler) handleWriteBinding(conn *websocket.Conn, msg Message) {
	session, ok := h.runtimes.Get(msg.SessionID)
	if !ok {
		h.sendError(conn, "session not found")
		return
	}
	if msg.Key == "" {
		h.sendError(conn, "key is required")
		return
	}

	session.Runtime.WriteBinding(msg.Key, msg.Value)
	h.pushState(conn, session)
}

// pushState sends the post-mutation snapshot and render tree.
func (h *Handler) pushState(conn *websocket.Conn, session *runtime.Session) {
	h.send(conn, gin.H{
		"type":    "state",
		"session": snapshot(session),
		"tree":    render.Page(session.Runtime),
	})
}

func snapshot(s *runtime.Session) gin.H {
	snap := gin.H{
		"id":            s.ID,
		"specId":        s.SpecID,
		"name":          s.Name,
		"currentPageId": s.Runtime.CurrentPageID(),
		"state":         s.Runtime.StateSnapshot(),
	}
	if alert := s.Runtime.ActiveAlert(); alert != nil {
		snap["alert"] = alert
	}
	return snap
}

func (h *Handler) send(conn *websocket.Conn, payload gin.H) {
	if err := conn.WriteJSON(payload); err != nil {
		h.log.Debug("write failed", zap.Error(err))
	}
}

func (h *Handler) sendError(conn *websocket.Conn, message string) {
	h.send(conn, gin.H{"type": "error", "error": message})
}
