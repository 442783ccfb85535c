package patient

import (
	"time"
)

// Patient holds the contact details reminders are delivered to. Read-only to
// the scheduling core; contact fields are denormalized onto schedule items at
// expansion time.
type Patient struct {
	ID          string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	PhoneNumber string `gorm:"type:varchar(20);not null;index" json:"phone_number"`
	EmailID     string `gorm:"type:varchar(255)" json:"email_id"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
