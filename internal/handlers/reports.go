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

// ReportHandler covers the shared report catalog plus the per-role default
// assignment endpoints.
type ReportHandler struct {
	DB  *gorm.DB
	Svc *services.RoleDefaultsService
}

func NewReportHandler(db *gorm.DB, svc *services.RoleDefaultsService) *ReportHandler {
	return &ReportHandler{DB: db, Svc: svc}
}

// GET /api/reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	var reports []models.Report
	if err := h.DB.Where("is_active = ?", true).Order("report_name asc").Find(&reports).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusOK, reports)
}

// GET /api/reports/{id}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	var report models.Report
	err := h.DB.Where("report_id = ?", mux.Vars(r)["id"]).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "Report not found")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

type catalogInput struct {
	ReportName string `json:"reportName"`
	ReportURL  string `json:"reportUrl"`
	WidgetName string `json:"widgetName"`
	WidgetURL  string `json:"widgetUrl"`
}

// POST /api/reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in catalogInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.Required("reportName", in.ReportName, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	report := models.Report{
		ReportID:   "report-" + uuid.NewString()[:8],
		ReportName: in.ReportName,
		ReportURL:  in.ReportURL,
		IsActive:   true,
	}
	if err := h.DB.Create(&report).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.Created(w, "/api/reports/"+report.ReportID, report)
}

// PUT /api/reports/{id}
func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in catalogInput
	if err := decodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var report models.Report
	err := h.DB.Where("report_id = ?", mux.Vars(r)["id"]).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "Report not found")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	report.ReportName = in.ReportName
	report.ReportURL = in.ReportURL
	if err := h.DB.Save(&report).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// DELETE /api/reports/{id}. Removes the report's view and role links but
// leaves the views and roles themselves untouched.
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var report models.Report
		err := tx.Where("report_id = ?", reportID).First(&report).Error
		if err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", reportID).Delete(&models.ViewReport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("report_id = ?", reportID).Delete(&models.RoleReport{}).Error; err != nil {
			return err
		}
		return tx.Delete(&report).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.Error(w, http.StatusNotFound, "Report not found")
		return
	}
	if err != nil {
		httpx.Error(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.NoContent(w)
}

// GET /api/reports/role/{roleId}
func (h *ReportHandler) ByRole(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Svc.ReportsByRole(mux.Vars(r)["roleId"])
	if err != nil {
		respondError(w, err, "Role not found")
		return
	}
	httpx.JSON(w, http.StatusOK, reports)
}

type assignReportsRequest struct {
	ReportIDs []string `json:"reportIds"`
}

// POST /api/reports/role/{roleId}/assign
func (h *ReportHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignReportsRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v := validation.Violations{}
	validation.NonEmptyList("reportIds", req.ReportIDs, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, v.First())
		return
	}
	if err := h.Svc.AssignReports(mux.Vars(r)["roleId"], req.ReportIDs); err != nil {
		respondError(w, err, "Role or Report not found")
		return
	}
	httpx.Message(w, "Reports assigned successfully")
}

// DELETE /api/reports/role/{roleId}/unassign/{reportId}
func (h *ReportHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Svc.UnassignReport(vars["roleId"], vars["reportId"]); err != nil {
		respondError(w, err, "Assignment not found")
		return
	}
	httpx.NoContent(w)
}
