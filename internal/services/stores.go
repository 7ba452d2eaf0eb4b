package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/insightdesk/portal-api/internal/links"
	"github.com/insightdesk/portal-api/internal/models"
)

// The five association tables share one generic ordered-link store, bound
// here to their parent/child columns.
var (
	groupViewLinks  = links.NewStore[models.ViewGroupView]("view_group_id", "view_id")
	viewReportLinks = links.NewStore[models.ViewReport]("view_id", "report_id")
	viewWidgetLinks = links.NewStore[models.ViewWidget]("view_id", "widget_id")
	roleReportLinks = links.NewStore[models.RoleReport]("role_id", "report_id")
	roleWidgetLinks = links.NewStore[models.RoleWidget]("role_id", "widget_id")
)

// newScopedID builds ids like "view-u1-3f2a9c1d": readable owner plus a short
// random suffix, as the portal's clients expect.
func newScopedID(prefix, userID string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, userID, uuid.NewString()[:8])
}

// requireReports fails with not-found when any id is absent from the catalog.
// Attaching is strict on both ends of the link, unlike the tolerant reorder
// path: a stale id fails the whole batch instead of persisting an orphan row.
func requireReports(tx *gorm.DB, reportIDs []string) error {
	for _, reportID := range reportIDs {
		var count int64
		err := tx.Model(&models.Report{}).Where("report_id = ?", reportID).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func requireWidgets(tx *gorm.DB, widgetIDs []string) error {
	for _, widgetID := range widgetIDs {
		var count int64
		err := tx.Model(&models.Widget{}).Where("widget_id = ?", widgetID).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
	}
	return nil
}
