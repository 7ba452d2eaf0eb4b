package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/insightdesk/portal-api/internal/httpx"
	"github.com/insightdesk/portal-api/internal/services"
	"github.com/insightdesk/portal-api/internal/validation"
)

type ViewGroupHandler struct {
	Svc *services.ViewGroupService
}

func NewViewGroupHandler(svc *services.ViewGroupService) *ViewGroupHandler {
	return &ViewGroupHandler{Svc: svc}
}

// GET /api/viewgroups/user/{userId}
func (h *ViewGroupHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	groups, err := h.Svc.ListForUser(userID)
	if err != nil {
		respondError(w, err, "ViewGroup not found")
		return
	}
	httpx.JSON(w, http.StatusOK, groups)
}

// GET /api/viewgroups/{id}?userId=
func (h *ViewGroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	userID := r.URL.Query().Get("userId")
	group, err := h.Svc.Get(groupID, userID)
	if err != nil {
		respondError(w, err, "ViewGroup not found")
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}

type viewGroupRequest struct {
	UserID string                  `json:"userId"`
	Data   services.ViewGroupInput `json:"data"`
}

// POST /api/viewgroups
func (h *ViewGroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req viewGroupRequest
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
	group, err := h.Svc.Create(req.UserID, req.Data)
	if err != nil {
		respondError(w, err, "ViewGroup not found")
		return
	}
	location := "/api/viewgroups/" + group.ViewGroupID + "?userId=" + url.QueryEscape(req.UserID)
	httpx.Created(w, location, group)
}

// PUT /api/viewgroups/{id}
func (h *ViewGroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	var req viewGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	group, err := h.Svc.Update(groupID, req.UserID, req.Data)
	if err != nil {
		respondError(w, err, "ViewGroup not found")
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}

// DELETE /api/viewgroups/{id}?userId=
func (h *ViewGroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	userID := r.URL.Query().Get("userId")
	if err := h.Svc.Delete(groupID, userID); err != nil {
		respondError(w, err, "ViewGroup not found")
		return
	}
	httpx.NoContent(w)
}

// POST /api/viewgroups/reorder
func (h *ViewGroupHandler) Reorder(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Svc.ReorderGroups(req.UserID, req.Items); err != nil {
		respondError(w, err, "ViewGroup not found")
		return
	}
	httpx.Message(w, "View groups reordered successfully")
}

type addViewsRequest struct {
	UserID  string   `json:"userId"`
	ViewIDs []string `json:"viewIds"`
}

// POST /api/viewgroups/{id}/views
func (h *ViewGroupHandler) AddViews(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	var req addViewsRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("userId", req.UserID, v)
	validation.NonEmptyList("viewIds", req.ViewIDs, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	if err := h.Svc.AddViews(groupID, req.UserID, req.ViewIDs); err != nil {
		respondError(w, err, "View or ViewGroup not found")
		return
	}
	httpx.Message(w, "Views added successfully")
}

// DELETE /api/viewgroups/{viewGroupId}/views/{viewId}?userId=
func (h *ViewGroupHandler) RemoveView(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := r.URL.Query().Get("userId")
	if err := h.Svc.RemoveView(vars["viewGroupId"], vars["viewId"], userID); err != nil {
		respondError(w, err, "View or ViewGroup not found")
		return
	}
	httpx.NoContent(w)
}

// POST /api/viewgroups/{id}/views/reorder
func (h *ViewGroupHandler) ReorderViews(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
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
	if err := h.Svc.ReorderViews(groupID, req.UserID, req.Items); err != nil {
		respondError(w, err, "ViewGroup not found")
		return
	}
	httpx.Message(w, "Views reordered successfully")
}
