package models

import "time"

// LayoutCustomization stores one opaque layout snapshot per (user, signature)
// pair. The blob is never parsed server-side; Timestamp is the client's own
// save stamp, distinct from the row timestamps.
type LayoutCustomization struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          string `gorm:"size:50;not null;index:idx_user_signature,unique,priority:1"`
	LayoutSignature string `gorm:"size:255;not null;index:idx_user_signature,unique,priority:2"`
	LayoutData      string
	Timestamp       *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NavigationSetting holds a user's sidebar preferences as opaque JSON text
// blobs. At most one row per user; materialized lazily on first read.
type NavigationSetting struct {
	ID                    uint   `gorm:"primaryKey"`
	UserID                string `gorm:"size:50;not null;uniqueIndex"`
	ViewGroupOrder        string
	ViewOrders            string
	HiddenViewGroups      string
	HiddenViews           string
	ExpandedViewGroups    string
	IsNavigationCollapsed bool `gorm:"not null;default:false"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
