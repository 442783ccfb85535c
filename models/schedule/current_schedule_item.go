package schedule

import (
	"time"

	"patient-followup/models/protocol"
)

// CurrentScheduleItem is one concrete, time-stamped reminder occurrence
// derived from a protocol event. Written once by the expansion engine and
// looked up by bucket key at dispatch time; never mutated afterwards.
type CurrentScheduleItem struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`

	PatientID   string `gorm:"type:varchar(64);not null;index" json:"patient_id"`
	PatientName string `gorm:"type:varchar(255);not null" json:"patient_name"`
	EventID     string `gorm:"type:varchar(64);not null;index" json:"event_id"`

	// Minute bucket the dispatcher queries by, "2006/01/02-15:04".
	BucketKey string    `gorm:"type:varchar(16);not null;index" json:"bucket_key"`
	EventTime time.Time `gorm:"not null" json:"event_time"`

	Content   string             `gorm:"type:text;not null" json:"content"`
	EventType protocol.EventType `gorm:"type:varchar(10);not null" json:"event_type"`
	// 4 decimal digits, leading zeros kept.
	EventCode string `gorm:"type:varchar(4);not null" json:"event_code"`

	// Reserved for a retry mechanism that is not implemented; always 0/nil.
	RetryCount int        `gorm:"default:0" json:"retry_count"`
	RetryTime  *time.Time `json:"retry_time,omitempty"`

	// Contact fields copied from the patient at expansion time.
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
	EmailID     string `gorm:"type:varchar(255)" json:"email_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
