package schedule

import (
	"time"
)

// Confirmation statuses written by this service. Inbound replies may carry any
// token; whatever the patient sends back (uppercased) is stored as-is.
const (
	ConfirmationStatusAwaited = "Awaited"
	ConfirmationStatusOK      = "OK"
	ConfirmationStatusCancel  = "CANCEL"
)

// EventResponse tracks an SMS occurrence until its reply arrives. The primary
// key is phoneNumber+eventCode so an inbound reply can be correlated from the
// origination number and the echoed code alone. Created by the dispatcher with
// status Awaited, updated by the correlator.
type EventResponse struct {
	ID string `gorm:"type:varchar(32);primaryKey" json:"id"`

	PatientID   string `gorm:"type:varchar(64);index" json:"patient_id"`
	PatientName string `gorm:"type:varchar(255)" json:"patient_name"`
	PhoneNumber string `gorm:"type:varchar(20);index" json:"phone_number"`
	EmailID     string `gorm:"type:varchar(255)" json:"email_id"`
	BucketKey   string `gorm:"type:varchar(16)" json:"bucket_key"`

	ConfirmationStatus string  `gorm:"type:varchar(50)" json:"confirmation_status"`
	InboundMessageID   *string `gorm:"type:varchar(255)" json:"inbound_message_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsAwaited returns true while no reply has been correlated yet.
func (r *EventResponse) IsAwaited() bool {
	return r.ConfirmationStatus == ConfirmationStatusAwaited
}
