package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/insightdesk/portal-api/internal/models"
)

func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)
	// MIGRATIONS=1 runs sql migrations via golang-migrate; otherwise AutoMigrate (dev convenience)
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range Models() {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"user_roles", "users", "views", "view_groups"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

// Models lists every persisted entity in dependency order; tests reuse it for
// sqlite AutoMigrate.
func Models() []any {
	return []any{
		&models.UserRole{}, &models.User{},
		&models.Report{}, &models.Widget{},
		&models.RoleReport{}, &models.RoleWidget{},
		&models.View{}, &models.ViewGroup{},
		&models.ViewGroupView{}, &models.ViewReport{}, &models.ViewWidget{},
		&models.LayoutCustomization{}, &models.NavigationSetting{},
	}
}

func seed(db *gorm.DB) {
	baseRoles := []models.UserRole{
		{RoleID: "role-admin", RoleName: "Administrator"},
		{RoleID: "role-analyst", RoleName: "Analyst"},
		{RoleID: "role-viewer", RoleName: "Viewer"},
	}
	for _, role := range baseRoles {
		var existing models.UserRole
		if err := db.Where("role_id = ?", role.RoleID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&role)
		}
	}
	baseReports := []models.Report{
		{ReportID: "report-sales", ReportName: "Sales Overview", ReportURL: "/reports/sales", IsActive: true},
		{ReportID: "report-ops", ReportName: "Operations", ReportURL: "/reports/ops", IsActive: true},
	}
	for _, report := range baseReports {
		var existing models.Report
		if err := db.Where("report_id = ?", report.ReportID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&report)
		}
	}
	baseWidgets := []models.Widget{
		{WidgetID: "widget-kpi", WidgetName: "KPI Summary", WidgetURL: "/widgets/kpi", IsActive: true},
		{WidgetID: "widget-alerts", WidgetName: "Alerts Feed", WidgetURL: "/widgets/alerts", IsActive: true},
	}
	for _, widget := range baseWidgets {
		var existing models.Widget
		if err := db.Where("widget_id = ?", widget.WidgetID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&widget)
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
