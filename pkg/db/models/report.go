package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is a single car sale record submitted by a user. Only approved
// reports feed the price estimate aggregation.
type Report struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
	Make      string          `gorm:"type:text;not null"`
	Model     string          `gorm:"type:text;not null"`
	Year      int             `gorm:"not null"`
	Lng       float64         `gorm:"not null"`
	Lat       float64         `gorm:"not null"`
	Mileage   int64           `gorm:"not null"`
	Approved  bool            `gorm:"not null;default:false"`
	UserID    uint            `gorm:"column:user_id;not null;index"`
	User      *User           `gorm:"foreignKey:UserID"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
