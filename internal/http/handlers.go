// Package http exposes the service surface: build pipeline, design
// validation and compilation, runtime sessions, the creation library, and
// the marketplace.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SimonSaysGiveMeSmile/GenApp/internal/design"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/engine"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/library"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/logging"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/monitoring"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/render"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/repair"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/runtime"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/schema"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/validate"
	"github.com/SimonSaysGiveMeSmile/GenApp/internal/value"
)

// Handlers holds the HTTP handler set and its collaborators.
type Handlers struct {
	engine      *engine.Engine
	runtimes    *runtime.Manager
	creations   *library.Creations
	marketplace *library.Marketplace
	metrics     *monitoring.Metrics
	log         *logging.Logger
}

// WithMetrics attaches dispatch metrics.
func (h *Handlers) WithMetrics(m *monitoring.Metrics) *Handlers {
	h.metrics = m
	return h
}

// NewHandlers wires the handler set.
func NewHandlers(
	eng *engine.Engine,
	runtimes *runtime.Manager,
	creations *library.Creations,
	marketplace *library.Marketplace,
	log *logging.Logger,
) *Handlers {
	if log == nil {
		log = logging.Nop()
	}
	return &Handlers{
		engine:      eng,
		runtimes:    runtimes,
		creations:   creations,
		marketplace: marketplace,
		log:         log.Named("http"),
	}
}

// Root handles the service banner.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "GenApp Engine",
		"version": "1.0.0",
	})
}

// Health reports component stats.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"build":       gin.H{"status": h.engine.Status(), "progress": h.engine.Status().Progress()},
		"runtimes":    h.runtimes.Stats(),
		"creations":   gin.H{"total": h.creations.Count()},
		"marketplace": gin.H{"total": h.marketplace.Count()},
	})
}

type buildRequest struct {
	Message string `json:"message" binding:"required"`
	Run     bool   `json:"run"`
}

// Build runs the prompt→spec pipeline. With run=true the resulting spec is
// loaded straight into a new runtime session.
func (h *Handlers) Build(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.engine.Build(c.Request.Context(), req.Message, nil)
	if res.Err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  res.Err.Error(),
			"notice": res.Notice,
		})
		return
	}

	out := gin.H{
		"source": res.Source,
		"spec":   res.Spec,
	}
	if res.Report != nil {
		out["report"] = res.Report
	}
	if res.Notice != "" {
		out["notice"] = res.Notice
	}

	if req.Run {
		session := h.runtimes.Open(res.Spec)
		out["session"] = h.sessionSnapshot(session)
	}

	c.JSON(http.StatusOK, out)
}

// decodeDesign reads a design tree from the request body.
func decodeDesign(c *gin.Context) (*design.Design, bool) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	d, err := design.Decode(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return d, true
}

// ValidateDesign returns findings and score for a design tree.
func (h *Handlers) ValidateDesign(c *gin.Context) {
	d, ok := decodeDesign(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, validate.Design(d))
}

// RepairDesign runs the repair pass and reports before/after validation.
func (h *Handlers) RepairDesign(c *gin.Context) {
	d, ok := decodeDesign(c)
	if !ok {
		return
	}

	before := validate.Design(d)
	fixed := repair.Design(d)
	after := validate.Design(fixed)

	c.JSON(http.StatusOK, gin.H{
		"design": fixed,
		"before": before,
		"after":  after,
	})
}

// CompileDesign compiles a design tree into a canonical spec.
func (h *Handlers) CompileDesign(c *gin.Context) {
	d, ok := decodeDesign(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"spec": design.Compile(d)})
}

// MarkupDesign renders a design tree as a standalone HTML document.
func (h *Handlers) MarkupDesign(c *gin.Context) {
	d, ok := decodeDesign(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(design.RenderDocument(d)))
}

// OpenRuntime creates a session from a spec payload.
func (h *Handlers) OpenRuntime(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	spec, err := schema.Decode(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := h.runtimes.Open(spec)
	h.log.Info("runtime opened",
		zap.String("session_id", session.ID),
		zap.String("spec_id", session.SpecID))
	c.JSON(http.StatusCreated, h.sessionSnapshot(session))
}

// ListRuntimes lists open sessions.
func (h *Handlers) ListRuntimes(c *gin.Context) {
	sessions := h.runtimes.List()
	out := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, h.sessionSnapshot(s))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out, "stats": h.runtimes.Stats()})
}

// GetRuntime returns one session snapshot.
func (h *Handlers) GetRuntime(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.sessionSnapshot(session))
}

type dispatchRequest struct {
	ActionIDs []string `json:"actionIds" binding:"required"`
}

// Dispatch runs a component's actions and returns the new snapshot.
func (h *Handlers) Dispatch(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.Runtime.Dispatch(req.ActionIDs)
	if h.metrics != nil {
		h.metrics.DispatchesTotal.WithLabelValues("http").Inc()
	}
	c.JSON(http.StatusOK, h.sessionSnapshot(session))
}

type bindingRequest struct {
	Key   string      `json:"key" binding:"required"`
	Value value.Value `json:"value"`
}

// WriteBinding sets one state key.
func (h *Handlers) WriteBinding(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req bindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session.Runtime.WriteBinding(req.Key, req.Value)
	c.JSON(http.StatusOK, h.sessionSnapshot(session))
}

type toggleRequest struct {
	Key string `json:"key" binding:"required"`
}

// Toggle flips a boolean state key.
func (h *Handlers) Toggle(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	on := session.Runtime.Toggle(req.Key)
	c.JSON(http.StatusOK, gin.H{"key": req.Key, "value": on, "session": h.sessionSnapshot(session)})
}

// RenderRuntime returns the render tree of the current page.
func (h *Handlers) RenderRuntime(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"tree": render.Page(session.Runtime)})
}

// DismissAlert clears the active alert.
func (h *Handlers) DismissAlert(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	session.Runtime.DismissAlert()
	c.JSON(http.StatusOK, h.sessionSnapshot(session))
}

// CloseRuntime destroys a session.
func (h *Handlers) CloseRuntime(c *gin.Context) {
	sessionID := c.Param("id")
	if !h.runtimes.Close(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": sessionID})
}

// ListCreations lists the user's saved apps.
func (h *Handlers) ListCreations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"creations": h.creations.List()})
}

type saveCreationRequest struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Spec        *schema.Spec `json:"spec" binding:"required"`
}

// SaveCreation upserts a saved app.
func (h *Handlers) SaveCreation(c *gin.Context) {
	var req saveCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creation := &library.Creation{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Spec:        req.Spec,
	}
	if err := h.creations.Save(creation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, creation)
}

// DeleteCreation removes a saved app.
func (h *Handlers) DeleteCreation(c *gin.Context) {
	if err := h.creations.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ListMarketplace lists catalog items, optionally filtered by category.
func (h *Handlers) ListMarketplace(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.marketplace.List(c.Query("category"))})
}

// InstallMarketplaceItem copies a catalog item into the user's creations.
func (h *Handlers) InstallMarketplaceItem(c *gin.Context) {
	creation, err := h.marketplace.Install(c.Param("id"), h.creations)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, creation)
}

func (h *Handlers) lookup(c *gin.Context) (*runtime.Session, bool) {
	session, ok := h.runtimes.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return session, true
}

// sessionSnapshot is the wire shape of a runtime session.
func (h *Handlers) sessionSnapshot(s *runtime.Session) gin.H {
	snap := gin.H{
		"id":            s.ID,
		"specId":        s.SpecID,
		"name":          s.Name,
		"currentPageId": s.Runtime.CurrentPageID(),
		"state":         s.Runtime.StateSnapshot(),
		"createdAt":     s.CreatedAt,
	}
	if alert := s.Runtime.ActiveAlert(); alert != nil {
		snap["alert"] = alert
	}
	return snap
}
