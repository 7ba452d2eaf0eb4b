package models

import "time"

// View is a user-owned dashboard page holding ordered reports and widgets.
type View struct {
	ViewID     string       `gorm:"primaryKey;size:50"`
	UserID     string       `gorm:"size:50;not null;index"`
	Name       string       `gorm:"size:200;not null"`
	IsVisible  bool         `gorm:"not null;default:true"`
	OrderIndex int          `gorm:"not null"`
	CreatedBy  string       `gorm:"size:50"`
	Reports    []ViewReport `gorm:"foreignKey:ViewID"`
	Widgets    []ViewWidget `gorm:"foreignKey:ViewID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ViewReport links a view to a report. The (view, report) pair is unique; the
// order index is a sort key scoped to the view, not a position count.
type ViewReport struct {
	ID         uint   `gorm:"primaryKey"`
	ViewID     string `gorm:"size:50;not null;index:idx_view_report,unique,priority:1"`
	ReportID   string `gorm:"size:50;not null;index:idx_view_report,unique,priority:2"`
	OrderIndex int    `gorm:"not null"`
	Report     Report `gorm:"foreignKey:ReportID"`
	CreatedAt  time.Time
}

type ViewWidget struct {
	ID         uint   `gorm:"primaryKey"`
	ViewID     string `gorm:"size:50;not null;index:idx_view_widget,unique,priority:1"`
	WidgetID   string `gorm:"size:50;not null;index:idx_view_widget,unique,priority:2"`
	OrderIndex int    `gorm:"not null"`
	Widget     Widget `gorm:"foreignKey:WidgetID"`
	CreatedAt  time.Time
}
