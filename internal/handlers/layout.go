package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/insightdesk/portal-api/internal/httpx"
	"github.com/insightdesk/portal-api/internal/services"
	"github.com/insightdesk/portal-api/internal/validation"
)

type LayoutHandler struct {
	Svc *services.PreferenceService
}

func NewLayoutHandler(svc *services.PreferenceService) *LayoutHandler {
	return &LayoutHandler{Svc: svc}
}

// GET /api/layout/{userId}
func (h *LayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.Svc.ListLayouts(mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err, "Layout not found")
		return
	}
	httpx.JSON(w, http.StatusOK, layouts)
}

// GET /api/layout/{userId}/{signature}
func (h *LayoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	layout, err := h.Svc.GetLayout(vars["userId"], vars["signature"])
	if err != nil {
		respondError(w, err, "Layout not found")
		return
	}
	httpx.JSON(w, http.StatusOK, layout)
}

type saveLayoutRequest struct {
	LayoutSignature string `json:"layoutSignature"`
	LayoutData      string `json:"layoutData"`
	Timestamp       *int64 `json:"timestamp"`
}

// POST /api/layout/{userId} — upsert on (userId, signature).
func (h *LayoutHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveLayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("layoutSignature", req.LayoutSignature, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	layout, err := h.Svc.SaveLayout(mux.Vars(r)["userId"], req.LayoutSignature, req.LayoutData, req.Timestamp)
	if err != nil {
		respondError(w, err, "Layout not found")
		return
	}
	httpx.JSON(w, http.StatusOK, layout)
}

// DELETE /api/layout/{userId}/{signature}
func (h *LayoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Svc.DeleteLayout(vars["userId"], vars["signature"]); err != nil {
		respondError(w, err, "Layout not found")
		return
	}
	httpx.NoContent(w)
}

// DELETE /api/layout/{userId}
func (h *LayoutHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.DeleteAllLayouts(mux.Vars(r)["userId"]); err != nil {
		respondError(w, err, "Layout not found")
		return
	}
	httpx.NoContent(w)
}
