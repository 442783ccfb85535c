package schedule

import (
	"context"
	"errors"
	"time"

	"patient-followup/models/patient"
	"patient-followup/models/protocol"
	scheduleModel "patient-followup/models/schedule"
)

// ErrResponseNotFound is returned by a ResponseStore when a field update under
// the strict policy targets a confirmation record that does not exist.
var ErrResponseNotFound = errors.New("event response not found")

// EncounterCreated is one notification from the encounter-created feed. It
// carries everything the expansion engine needs; delivery is at-least-once and
// re-delivery produces duplicate occurrences.
type EncounterCreated struct {
	EncounterID string    `json:"encounter_id"`
	ProtocolID  string    `json:"protocol_id"`
	PatientID   string    `json:"patient_id"`
	StartedOn   time.Time `json:"started_on"`
}

// InboundSMS is one notification from the inbound-reply feed.
type InboundSMS struct {
	OriginationNumber string `json:"originationNumber"`
	MessageBody       string `json:"messageBody"`
	InboundMessageID  string `json:"inboundMessageId"`
}

// ScheduleStore is the read/write boundary for protocols, patients and
// schedule items. BatchPutScheduleItems accepts at most MaxBatchSize items per
// call, matching the underlying store's per-request limit.
type ScheduleStore interface {
	GetProtocol(ctx context.Context, id string) (*protocol.Protocol, error)
	GetPatient(ctx context.Context, id string) (*patient.Patient, error)
	EventsByProtocol(ctx context.Context, protocolID string) ([]protocol.Event, error)
	BatchPutScheduleItems(ctx context.Context, items []scheduleModel.CurrentScheduleItem) error
	ScheduleItemsByBucket(ctx context.Context, bucketKey string) ([]scheduleModel.CurrentScheduleItem, error)
}

// ResponseStore is the write boundary for confirmation records.
// UpdateResponseFields applies a field-level update of confirmationStatus and
// inboundMessageId to the record with the given id; with upsert true a missing
// record is created with just those fields, otherwise ErrResponseNotFound.
type ResponseStore interface {
	PutResponse(ctx context.Context, response *scheduleModel.EventResponse) error
	UpdateResponseFields(ctx context.Context, id, confirmationStatus, inboundMessageID string, upsert bool) error
}

// DispatchRecorder appends dispatch attempts to the audit trail.
type DispatchRecorder interface {
	RecordDispatch(ctx context.Context, event *scheduleModel.DispatchEvent) error
}

// VoiceTasker creates outbound call tasks against the contact-routing service.
type VoiceTasker interface {
	CreateTask(ctx context.Context, name string, attributes map[string]string) error
}

// Messenger sends outbound SMS and email.
type Messenger interface {
	SendSMS(ctx context.Context, phoneNumber, body string) error
	SendEmail(ctx context.Context, emailID, subject, body string) error
}
