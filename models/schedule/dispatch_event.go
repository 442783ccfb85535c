package schedule

import (
	"time"

	"patient-followup/models/protocol"
)

// Dispatch outcomes recorded in the audit trail.
const (
	DispatchOutcomeSent   = "sent"
	DispatchOutcomeFailed = "failed"
)

// DispatchEvent is an append-only snapshot of one dispatch attempt, mirroring
// the schedule item fields at the moment it was fired.
type DispatchEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ScheduleItemID string `gorm:"type:varchar(64);not null;index" json:"schedule_item_id"`
	PatientID      string `gorm:"type:varchar(64);index" json:"patient_id"`
	PatientName    string `gorm:"type:varchar(255)" json:"patient_name"`
	PhoneNumber    string `gorm:"type:varchar(20)" json:"phone_number"`
	EmailID        string `gorm:"type:varchar(255)" json:"email_id"`

	BucketKey string             `gorm:"type:varchar(16);index" json:"bucket_key"`
	EventType protocol.EventType `gorm:"type:varchar(10);not null" json:"event_type"`
	EventCode string             `gorm:"type:varchar(4)" json:"event_code"`
	Content   string             `gorm:"type:text" json:"content"`

	Outcome   string `gorm:"type:varchar(20);not null" json:"outcome"` // sent, failed
	ErrorText string `gorm:"type:text" json:"error_text,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
