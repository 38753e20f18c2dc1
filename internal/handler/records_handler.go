package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anishtharur/Simple-Admin-UI/internal/domain"
	"github.com/anishtharur/Simple-Admin-UI/internal/engine"
	"github.com/anishtharur/Simple-Admin-UI/internal/loader"
	"github.com/anishtharur/Simple-Admin-UI/internal/middleware"
)

// RecordEngine is the engine surface the handler drives.
// Used for dependency injection and testing with a prepared engine.
type RecordEngine interface {
	Load(raw []domain.RawRecord)
	MarkLoadFailed()
	Search(term string)
	GoToPage(n int)
	BeginEdit(id string)
	CommitEdit(id, name, email, role string)
	CancelEdit(id string)
	ToggleSelect(id string)
	ToggleSelectPage(ids []string)
	Delete(id string)
	DeleteSelected()
	PageView() []domain.Record
	Snapshot() engine.Snapshot
}

// RecordsHandler handles record-related HTTP requests.
type RecordsHandler struct {
	engine RecordEngine
	seeder *loader.Loader
}

// NewRecordsHandler creates a new RecordsHandler. The seeder may be nil
// when reload is not wired (tests).
func NewRecordsHandler(e RecordEngine, seeder *loader.Loader) *RecordsHandler {
	return &RecordsHandler{
		engine: e,
		seeder: seeder,
	}
}

// RecordResponse represents one record in the API response.
type RecordResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Selected bool   `json:"is_selected"`
	Editing  bool   `json:"edit_enabled"`
}

// StateResponse is the envelope every query and command answers with: the
// current page view plus the derived counters and error flags, so the
// renderer can repaint from a single round trip.
type StateResponse struct {
	Records     []RecordResponse `json:"records"`
	Page        int              `json:"page"`
	PageCount   int              `json:"page_count"`
	ActiveCount int              `json:"active_count"`
	TotalCount  int              `json:"total_count"`
	SelectAll   bool             `json:"select_all"`
	SearchError bool             `json:"search_error"`
	SystemError bool             `json:"system_error"`
	LoadError   bool             `json:"load_error"`
}

// SearchRequest is the body of POST /api/v1/records/search. An empty term
// clears the filter, so the field carries no required binding.
type SearchRequest struct {
	Term string `json:"term"`
}

// PageRequest is the body of POST /api/v1/records/page. Out-of-range pages
// are clamped by the engine rather than rejected.
type PageRequest struct {
	Page int `json:"page"`
}

// CommitRequest is the body of POST /api/v1/records/:id/commit. Fields are
// required to be present; their content is not validated by design.
type CommitRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

// SelectPageRequest is the body of POST /api/v1/records/select-page: the
// ids currently visible on the page.
type SelectPageRequest struct {
	IDs []string `json:"ids"`
}

// state builds the response envelope from the engine's current views.
func (h *RecordsHandler) state() StateResponse {
	view := h.engine.PageView()
	snap := h.engine.Snapshot()

	records := make([]RecordResponse, 0, len(view))
	for _, r := range view {
		records = append(records, RecordResponse{
			ID:       r.ID,
			Name:     r.Name,
			Email:    r.Email,
			Role:     r.Role,
			Selected: r.Selected,
			Editing:  r.Editing,
		})
	}

	return StateResponse{
		Records:     records,
		Page:        snap.Page,
		PageCount:   snap.PageCount,
		ActiveCount: snap.ActiveCount,
		TotalCount:  snap.TotalCount,
		SelectAll:   snap.SelectAll,
		SearchError: snap.SearchError,
		SystemError: snap.SystemError,
		LoadError:   snap.LoadError,
	}
}

// GetRecords handles GET /api/v1/records
func (h *RecordsHandler) GetRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.state())
}

// Search handles POST /api/v1/records/search
func (h *RecordsHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.engine.Search(req.Term)
	c.JSON(http.StatusOK, h.state())
}

// GoToPage handles POST /api/v1/records/page
func (h *RecordsHandler) GoToPage(c *gin.Context) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.engine.GoToPage(req.Page)
	c.JSON(http.StatusOK, h.state())
}

// BeginEdit handles POST /api/v1/records/:id/edit
func (h *RecordsHandler) BeginEdit(c *gin.Context) {
	h.engine.BeginEdit(c.Param("id"))
	c.JSON(http.StatusOK, h.state())
}

// CommitEdit handles POST /api/v1/records/:id/commit
func (h *RecordsHandler) CommitEdit(c *gin.Context) {
	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and role are required"})
		return
	}

	h.engine.CommitEdit(c.Param("id"), req.Name, req.Email, req.Role)
	c.JSON(http.StatusOK, h.state())
}

// CancelEdit handles POST /api/v1/records/:id/cancel
func (h *RecordsHandler) CancelEdit(c *gin.Context) {
	h.engine.CancelEdit(c.Param("id"))
	c.JSON(http.StatusOK, h.state())
}

// ToggleSelect handles POST /api/v1/records/:id/toggle
func (h *RecordsHandler) ToggleSelect(c *gin.Context) {
	h.engine.ToggleSelect(c.Param("id"))
	c.JSON(http.StatusOK, h.state())
}

// ToggleSelectPage handles POST /api/v1/records/select-page
func (h *RecordsHandler) ToggleSelectPage(c *gin.Context) {
	var req SelectPageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids is required"})
		return
	}

	h.engine.ToggleSelectPage(req.IDs)
	c.JSON(http.StatusOK, h.state())
}

// Delete handles DELETE /api/v1/records/:id
func (h *RecordsHandler) Delete(c *gin.Context) {
	h.engine.Delete(c.Param("id"))
	c.JSON(http.StatusOK, h.state())
}

// DeleteSelected handles POST /api/v1/records/delete-selected
func (h *RecordsHandler) DeleteSelected(c *gin.Context) {
	h.engine.DeleteSelected()
	c.JSON(http.StatusOK, h.state())
}

// Reload handles POST /api/v1/records/reload. The seed batch replaces the
// record set wholesale; there is no merge.
func (h *RecordsHandler) Reload(c *gin.Context) {
	if h.seeder == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no seed source configured"})
		return
	}

	requestID := middleware.GetRequestID(c)
	log.Printf("[request_id=%s] Reloading record set from seed source", requestID)
	h.seeder.Seed(c.Request.Context(), h.engine)
	c.JSON(http.StatusOK, h.state())
}
