package encounter

import (
	"time"

	"patient-followup/models/patient"
	"patient-followup/models/protocol"
)

// Encounter anchors a protocol's timeline for one patient. Created exactly
// once per clinical encounter and never mutated afterwards; StartedOn is the
// instant every occurrence time is computed from.
type Encounter struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`

	ProtocolID string            `gorm:"type:varchar(64);not null;index" json:"protocol_id"`
	Protocol   protocol.Protocol `gorm:"foreignKey:ProtocolID" json:"protocol,omitempty"`

	PatientID string          `gorm:"type:varchar(64);not null;index" json:"patient_id"`
	Patient   patient.Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`

	StartedOn time.Time `gorm:"not null" json:"started_on"`

	CreatedBy string    `gorm:"type:varchar(255)" json:"created_by,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
