package encounter

// CreateEncounterRequest represents the request payload for recording an
// encounter. StartedOn is RFC3339; empty means "now".
type CreateEncounterRequest struct {
	ProtocolID string `json:"protocol_id" validate:"required"`
	PatientID  string `json:"patient_id" validate:"required"`
	StartedOn  string `json:"started_on,omitempty"`
}
