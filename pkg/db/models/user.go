package models

import "time"

// User represents the canonical identity entity. Admin is a first-class
// persisted flag; only admins may change report approval.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Email        string    `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Admin        bool      `gorm:"column:admin;not null;default:false"`
	Reports      []Report  `gorm:"foreignKey:UserID"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
