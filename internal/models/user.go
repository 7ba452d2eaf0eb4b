package models

import "time"

// User & role models. Callers are trusted to supply a valid user id; there is
// no credential material stored here.
type User struct {
	UserID    string    `gorm:"primaryKey;size:50" json:"userId"`
	Username  string    `gorm:"size:200;not null;index" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	RoleID    string    `gorm:"size:50;not null;index" json:"roleId"`
	Role      UserRole  `gorm:"foreignKey:RoleID" json:"-"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserRole struct {
	RoleID    string    `gorm:"primaryKey;size:50" json:"roleId"`
	RoleName  string    `gorm:"size:100;not null" json:"roleName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
