package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/models"
)

// RoleDefaultsService maintains the ordered report/widget assignments each
// role starts from, independent of per-user customization.
type RoleDefaultsService struct{ DB *gorm.DB }

func NewRoleDefaultsService(db *gorm.DB) *RoleDefaultsService {
	return &RoleDefaultsService{DB: db}
}

// AssignReports appends reports to the role's default list. Both the role and
// every report must exist. The order index is a single running max across the
// batch, so members land in input order even though the max is not re-queried
// per item.
func (s *RoleDefaultsService) AssignReports(roleID string, reportIDs []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireRole(tx, roleID); err != nil {
			return err
		}
		if err := requireReports(tx, reportIDs); err != nil {
			return err
		}
		return roleReportLinks.Append(tx, roleID, reportIDs, func(childID string, orderIndex int) models.RoleReport {
			return models.RoleReport{RoleID: roleID, ReportID: childID, OrderIndex: orderIndex}
		})
	})
}

func (s *RoleDefaultsService) UnassignReport(roleID, reportID string) error {
	return roleReportLinks.Remove(s.DB, roleID, reportID)
}

// ReportsByRole returns the role's default reports in assignment order.
// Inactive reports are filtered out but keep their rows; reactivating a
// report restores its place.
func (s *RoleDefaultsService) ReportsByRole(roleID string) ([]ReportDTO, error) {
	rows, err := roleReportLinks.ListOrdered(s.DB.Preload("Report"), roleID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReportDTO, 0, len(rows))
	for _, row := range rows {
		if !row.Report.IsActive {
			continue
		}
		dtos = append(dtos, ReportDTO{
			ReportID:   row.Report.ReportID,
			ReportName: row.Report.ReportName,
			ReportURL:  row.Report.ReportURL,
			IsActive:   row.Report.IsActive,
			OrderIndex: row.OrderIndex,
		})
	}
	return dtos, nil
}

func (s *RoleDefaultsService) AssignWidgets(roleID string, widgetIDs []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.requireRole(tx, roleID); err != nil {
			return err
		}
		if err := requireWidgets(tx, widgetIDs); err != nil {
			return err
		}
		return roleWidgetLinks.Append(tx, roleID, widgetIDs, func(childID string, orderIndex int) models.RoleWidget {
			return models.RoleWidget{RoleID: roleID, WidgetID: childID, OrderIndex: orderIndex}
		})
	})
}

func (s *RoleDefaultsService) UnassignWidget(roleID, widgetID string) error {
	return roleWidgetLinks.Remove(s.DB, roleID, widgetID)
}

func (s *RoleDefaultsService) WidgetsByRole(roleID string) ([]WidgetDTO, error) {
	rows, err := roleWidgetLinks.ListOrdered(s.DB.Preload("Widget"), roleID)
	if err != nil {
		return nil, err
	}
	dtos := make([]WidgetDTO, 0, len(rows))
	for _, row := range rows {
		if !row.Widget.IsActive {
			continue
		}
		dtos = append(dtos, WidgetDTO{
			WidgetID:   row.Widget.WidgetID,
			WidgetName: row.Widget.WidgetName,
			WidgetURL:  row.Widget.WidgetURL,
			IsActive:   row.Widget.IsActive,
			OrderIndex: row.OrderIndex,
		})
	}
	return dtos, nil
}

func (s *RoleDefaultsService) requireRole(tx *gorm.DB, roleID string) error {
	var role models.UserRole
	err := tx.Where("role_id = ?", roleID).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
