package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/insightdesk/portal-api/internal/db"
	"github.com/insightdesk/portal-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, m := range db.Models() {
		if err := conn.AutoMigrate(m); err != nil {
			t.Fatalf("automigrate %T: %v", m, err)
		}
	}
	return conn
}

func seedReport(t *testing.T, conn *gorm.DB, id, name string, active bool) {
	t.Helper()
	r := models.Report{ReportID: id, ReportName: name, ReportURL: "/r/" + id, IsActive: active}
	if err := conn.Create(&r).Error; err != nil {
		t.Fatalf("seed report %s: %v", id, err)
	}
}

func seedWidget(t *testing.T, conn *gorm.DB, id, name string, active bool) {
	t.Helper()
	w := models.Widget{WidgetID: id, WidgetName: name, WidgetURL: "/w/" + id, IsActive: active}
	if err := conn.Create(&w).Error; err != nil {
		t.Fatalf("seed widget %s: %v", id, err)
	}
}

func seedRole(t *testing.T, conn *gorm.DB, id, name string) {
	t.Helper()
	role := models.UserRole{RoleID: id, RoleName: name}
	if err := conn.Create(&role).Error; err != nil {
		t.Fatalf("seed role %s: %v", id, err)
	}
}
