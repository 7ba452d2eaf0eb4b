package models

import "time"

// Shared catalog entries. Reports and widgets are global resources referenced
// by per-user views and per-role default assignments.
type Report struct {
	ReportID   string    `gorm:"primaryKey;size:50" json:"reportId"`
	ReportName string    `gorm:"size:200;not null" json:"reportName"`
	ReportURL  string    `gorm:"size:500" json:"reportUrl"`
	IsActive   bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Widget struct {
	WidgetID   string    `gorm:"primaryKey;size:50" json:"widgetId"`
	WidgetName string    `gorm:"size:200;not null" json:"widgetName"`
	WidgetURL  string    `gorm:"size:500" json:"widgetUrl"`
	IsActive   bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RoleReport orders the default report assignments of a role.
type RoleReport struct {
	ID         uint   `gorm:"primaryKey"`
	RoleID     string `gorm:"size:50;not null;index:idx_role_report,unique,priority:1"`
	ReportID   string `gorm:"size:50;not null;index:idx_role_report,unique,priority:2"`
	OrderIndex int    `gorm:"not null"`
	Report     Report `gorm:"foreignKey:ReportID"`
	CreatedAt  time.Time
}

type RoleWidget struct {
	ID         uint   `gorm:"primaryKey"`
	RoleID     string `gorm:"size:50;not null;index:idx_role_widget,unique,priority:1"`
	WidgetID   string `gorm:"size:50;not null;index:idx_role_widget,unique,priority:2"`
	OrderIndex int    `gorm:"not null"`
	Widget     Widget `gorm:"foreignKey:WidgetID"`
	CreatedAt  time.Time
}
