package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/insightdesk/portal-api/internal/httpx"
	"github.com/insightdesk/portal-api/internal/services"
)

type NavigationHandler struct {
	Svc *services.PreferenceService
}

func NewNavigationHandler(svc *services.PreferenceService) *NavigationHandler {
	return &NavigationHandler{Svc: svc}
}

// GET /api/navigation/{userId} — first read materializes empty defaults.
func (h *NavigationHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.Svc.GetOrCreateNavigation(mux.Vars(r)["userId"])
	if err != nil {
		respondError(w, err, "Navigation settings not found")
		return
	}
	httpx.JSON(w, http.StatusOK, setting)
}

// updateNavigationRequest keeps the preference blobs opaque: each field is
// raw JSON text stored verbatim. This is a full replace, so a nil field
// becomes the empty default rather than keeping the stored value.
type updateNavigationRequest struct {
	ViewGroupOrder        json.RawMessage `json:"viewGroupOrder"`
	ViewOrders            json.RawMessage `json:"viewOrders"`
	HiddenViewGroups      json.RawMessage `json:"hiddenViewGroups"`
	HiddenViews           json.RawMessage `json:"hiddenViews"`
	ExpandedViewGroups    json.RawMessage `json:"expandedViewGroups"`
	IsNavigationCollapsed *bool           `json:"isNavigationCollapsed"`
}

// PUT /api/navigation/{userId}
func (h *NavigationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateNavigationRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in := services.NavigationInput{
		ViewGroupOrder:     blobOrDefault(req.ViewGroupOrder, "[]"),
		ViewOrders:         blobOrDefault(req.ViewOrders, "{}"),
		HiddenViewGroups:   blobOrDefault(req.HiddenViewGroups, "[]"),
		HiddenViews:        blobOrDefault(req.HiddenViews, "[]"),
		ExpandedViewGroups: blobOrDefault(req.ExpandedViewGroups, "[]"),
	}
	if req.IsNavigationCollapsed != nil {
		in.IsNavigationCollapsed = *req.IsNavigationCollapsed
	}
	setting, err := h.Svc.UpdateNavigation(mux.Vars(r)["userId"], in)
	if err != nil {
		respondError(w, err, "Navigation settings not found")
		return
	}
	httpx.JSON(w, http.StatusOK, setting)
}

// DELETE /api/navigation/{userId} — resetting absent settings still succeeds.
func (h *NavigationHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.ResetNavigation(mux.Vars(r)["userId"]); err != nil {
		respondError(w, err, "Navigation settings not found")
		return
	}
	httpx.NoContent(w)
}

func blobOrDefault(raw json.RawMessage, def string) string {
	if len(raw) == 0 || string(raw) == "null" {
		return def
	}
	return string(raw)
}
