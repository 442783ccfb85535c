package protocol

import (
	"time"
)

// Protocol represents a follow-up protocol: a named set of reminder events
// with an overall validity horizon in days.
type Protocol struct {
	ID           string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	ExpireInDays int    `gorm:"not null;default:0" json:"expire_in_days"`

	CreatedBy string     `gorm:"type:varchar(255)" json:"created_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
