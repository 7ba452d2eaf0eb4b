package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/insightdesk/portal-api/internal/httpx"
	"github.com/insightdesk/portal-api/internal/links"
	"github.com/insightdesk/portal-api/internal/services"
	"github.com/insightdesk/portal-api/internal/validation"
)

type ViewHandler struct {
	Svc *services.ViewService
}

func NewViewHandler(svc *services.ViewService) *ViewHandler { return &ViewHandler{Svc: svc} }

// GET /api/views/user/{userId}
func (h *ViewHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	views, err := h.Svc.ListForUser(userID)
	if err != nil {
		respondError(w, err, "View not found")
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

// GET /api/views/{id}?userId=
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["id"]
	userID := r.URL.Query().Get("userId")
	view, err := h.Svc.Get(viewID, userID)
	if err != nil {
		respondError(w, err, "View not found")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

type createViewRequest struct {
	UserID string             `json:"userId"`
	Data   services.ViewInput `json:"data"`
}

// POST /api/views
func (h *ViewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createViewRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("userId", req.UserID, v)
	validation.Required("data.name", req.Data.Name, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	view, err := h.Svc.Create(req.UserID, req.Data)
	if err != nil {
		respondError(w, err, "Report or Widget not found")
		return
	}
	location := "/api/views/" + view.ViewID + "?userId=" + url.QueryEscape(req.UserID)
	httpx.Created(w, location, view)
}

// PUT /api/views/{id}
func (h *ViewHandler) Update(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["id"]
	var req createViewRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	view, err := h.Svc.Update(viewID, req.UserID, req.Data)
	if err != nil {
		respondError(w, err, "View not found")
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

// DELETE /api/views/{id}?userId=
func (h *ViewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["id"]
	userID := r.URL.Query().Get("userId")
	if err := h.Svc.Delete(viewID, userID); err != nil {
		respondError(w, err, "View not found")
		return
	}
	httpx.NoContent(w)
}

type attachRequest struct {
	UserID    string   `json:"userId"`
	ReportIDs []string `json:"reportIds"`
	WidgetIDs []string `json:"widgetIds"`
}

// POST /api/views/{id}/reports
func (h *ViewHandler) AddReports(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["id"]
	var req attachRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("userId", req.UserID, v)
	validation.NonEmptyList("reportIds", req.ReportIDs, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	if err := h.Svc.AddReports(viewID, req.UserID, req.ReportIDs); err != nil {
		respondError(w, err, "View or Report not found")
		return
	}
	httpx.Message(w, "Reports added successfully")
}

// DELETE /api/views/{viewId}/reports/{reportId}?userId=
func (h *ViewHandler) RemoveReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := r.URL.Query().Get("userId")
	if err := h.Svc.RemoveReport(vars["viewId"], userID, vars["reportId"]); err != nil {
		respondError(w, err, "Report not found in view")
		return
	}
	httpx.NoContent(w)
}

type reorderRequest struct {
	UserID string              `json:"userId"`
	Items  []links.ReorderItem `json:"items"`
}

// POST /api/views/{id}/reports/reorder
func (h *ViewHandler) ReorderReports(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["id"]
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("userId", req.UserID, v)
	checkReorderItems(req.Items, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	if err := h.Svc.ReorderReports(viewID, req.UserID, req.Items); err != nil {
		respondError(w, err, "View not found")
		return
	}
	httpx.Message(w, "Reports reordered successfully")
}

// POST /api/views/{id}/widgets
func (h *ViewHandler) AddWidgets(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["id"]
	var req attachRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("userId", req.UserID, v)
	validation.NonEmptyList("widgetIds", req.WidgetIDs, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	if err := h.Svc.AddWidgets(viewID, req.UserID, req.WidgetIDs); err != nil {
		respondError(w, err, "View or Widget not found")
		return
	}
	httpx.Message(w, "Widgets added successfully")
}

// DELETE /api/views/{viewId}/widgets/{widgetId}?userId=
func (h *ViewHandler) RemoveWidget(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := r.URL.Query().Get("userId")
	if err := h.Svc.RemoveWidget(vars["viewId"], userID, vars["widgetId"]); err != nil {
		respondError(w, err, "Widget not found in view")
		return
	}
	httpx.NoContent(w)
}

// POST /api/views/{id}/widgets/reorder
func (h *ViewHandler) ReorderWidgets(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["id"]
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("userId", req.UserID, v)
	checkReorderItems(req.Items, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	if err := h.Svc.ReorderWidgets(viewID, req.UserID, req.Items); err != nil {
		respondError(w, err, "View not found")
		return
	}
	httpx.Message(w, "Widgets reordered successfully")
}
