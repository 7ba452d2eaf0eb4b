package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/httpx"
	"github.com/insightdesk/portal-api/internal/models"
	"github.com/insightdesk/portal-api/internal/services"
	"github.com/insightdesk/portal-api/internal/validation"
)

// WidgetHandler mirrors ReportHandler for the widget catalog.
type WidgetHandler struct {
	DB  *gorm.DB
	Svc *services.RoleDefaultsService
}

func NewWidgetHandler(db *gorm.DB, svc *services.RoleDefaultsService) *WidgetHandler {
	return &WidgetHandler{DB: db, Svc: svc}
}

// GET /api/widgets
func (h *WidgetHandler) List(w http.ResponseWriter, r *http.Request) {
	var widgets []models.Widget
	if err := h.DB.Where("is_active = ?", true).Order("widget_name asc").Find(&widgets).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusOK, widgets)
}

// GET /api/widgets/{id}
func (h *WidgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	var widget models.Widget
	err := h.DB.Where("widget_id = ?", mux.Vars(r)["id"]).First(&widget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "Widget not found")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusOK, widget)
}

// POST /api/widgets
func (h *WidgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in catalogInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("widgetName", in.WidgetName, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	widget := models.Widget{
		WidgetID:   "widget-" + uuid.NewString()[:8],
		WidgetName: in.WidgetName,
		WidgetURL:  in.WidgetURL,
		IsActive:   true,
	}
	if err := h.DB.Create(&widget).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.Created(w, "/api/widgets/"+widget.WidgetID, widget)
}

// PUT /api/widgets/{id}
func (h *WidgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in catalogInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var widget models.Widget
	err := h.DB.Where("widget_id = ?", mux.Vars(r)["id"]).First(&widget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "Widget not found")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	widget.WidgetName = in.WidgetName
	widget.WidgetURL = in.WidgetURL
	if err := h.DB.Save(&widget).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusOK, widget)
}

// DELETE /api/widgets/{id}
func (h *WidgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	widgetID := mux.Vars(r)["id"]
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var widget models.Widget
		err := tx.Where("widget_id = ?", widgetID).First(&widget).Error
		if err != nil {
			return err
		}
		if err := tx.Where("widget_id = ?", widgetID).Delete(&models.ViewWidget{}).Error; err != nil {
			return err
		}
		if err := tx.Where("widget_id = ?", widgetID).Delete(&models.RoleWidget{}).Error; err != nil {
			return err
		}
		return tx.Delete(&widget).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "Widget not found")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.NoContent(w)
}

// GET /api/widgets/role/{roleId}
func (h *WidgetHandler) ByRole(w http.ResponseWriter, r *http.Request) {
	widgets, err := h.Svc.WidgetsByRole(mux.Vars(r)["roleId"])
	if err != nil {
		respondError(w, err, "Role not found")
		return
	}
	httpx.JSON(w, http.StatusOK, widgets)
}

type assignWidgetsRequest struct {
	WidgetIDs []string `json:"widgetIds"`
}

// POST /api/widgets/role/{roleId}/assign
func (h *WidgetHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignWidgetsRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.NonEmptyList("widgetIds", req.WidgetIDs, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	if err := h.Svc.AssignWidgets(mux.Vars(r)["roleId"], req.WidgetIDs); err != nil {
		respondError(w, err, "Role or Widget not found")
		return
	}
	httpx.Message(w, "Widgets assigned successfully")
}

// DELETE /api/widgets/role/{roleId}/unassign/{widgetId}
func (h *WidgetHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Svc.UnassignWidget(vars["roleId"], vars["widgetId"]); err != nil {
		respondError(w, err, "Assignment not found")
		return
	}
	httpx.NoContent(w)
}
