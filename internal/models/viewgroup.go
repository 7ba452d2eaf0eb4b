package models

import "time"

// ViewGroup is the top level of a user's navigation tree: an ordered set of
// views, each of which carries its own ordered reports and widgets.
type ViewGroup struct {
	ViewGroupID string          `gorm:"primaryKey;size:50"`
	UserID      string          `gorm:"size:50;not null;index"`
	Name        string          `gorm:"size:200;not null"`
	IsVisible   bool            `gorm:"not null;default:true"`
	IsDefault   bool            `gorm:"not null;default:false"`
	OrderIndex  int             `gorm:"not null"`
	CreatedBy   string          `gorm:"size:50"`
	GroupViews  []ViewGroupView `gorm:"foreignKey:ViewGroupID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ViewGroupView struct {
	ID          uint   `gorm:"primaryKey"`
	ViewGroupID string `gorm:"size:50;not null;index:idx_group_view,unique,priority:1"`
	ViewID      string `gorm:"size:50;not null;index:idx_group_view,unique,priority:2"`
	OrderIndex  int    `gorm:"not null"`
	CreatedBy   string `gorm:"size:50"`
	View        View   `gorm:"foreignKey:ViewID"`
	CreatedAt   time.Time
}
