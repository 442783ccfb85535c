package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"patient-followup/models/patient"
	"patient-followup/models/protocol"
	scheduleModel "patient-followup/models/schedule"
)

// fakeStore is an in-memory ScheduleStore that records every batch write and
// bucket query it receives.
type fakeStore struct {
	protocols map[string]*protocol.Protocol
	patients  map[string]*patient.Patient
	events    map[string][]protocol.Event

	bucketItems map[string][]scheduleModel.CurrentScheduleItem

	mu             sync.Mutex
	batches        [][]scheduleModel.CurrentScheduleItem
	failBatchIndex int // 1-based index of the batch call to fail, 0 = never
	queriedBuckets []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		protocols:   make(map[string]*protocol.Protocol),
		patients:    make(map[string]*patient.Patient),
		events:      make(map[string][]protocol.Event),
		bucketItems: make(map[string][]scheduleModel.CurrentScheduleItem),
	}
}

func (s *fakeStore) GetProtocol(_ context.Context, id string) (*protocol.Protocol, error) {
	p, ok := s.protocols[id]
	if !ok {
		return nil, fmt.Errorf("protocol %s not found", id)
	}
	return p, nil
}

func (s *fakeStore) GetPatient(_ context.Context, id string) (*patient.Patient, error) {
	p, ok := s.patients[id]
	if !ok {
		return nil, fmt.Errorf("patient %s not found", id)
	}
	return p, nil
}

func (s *fakeStore) EventsByProtocol(_ context.Context, protocolID string) ([]protocol.Event, error) {
	return s.events[protocolID], nil
}

func (s *fakeStore) BatchPutScheduleItems(_ context.Context, items []scheduleModel.CurrentScheduleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, append([]scheduleModel.CurrentScheduleItem(nil), items...))
	if s.failBatchIndex > 0 && len(s.batches) == s.failBatchIndex {
		return errors.New("batch write failed")
	}
	for _, item := range items {
		s.bucketItems[item.BucketKey] = append(s.bucketItems[item.BucketKey], item)
	}
	return nil
}

func (s *fakeStore) batchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

func (s *fakeStore) ScheduleItemsByBucket(_ context.Context, bucketKey string) ([]scheduleModel.CurrentScheduleItem, error) {
	s.queriedBuckets = append(s.queriedBuckets, bucketKey)
	return s.bucketItems[bucketKey], nil
}

// persistedItems flattens every successfully written item across batches.
func (s *fakeStore) persistedItems() []scheduleModel.CurrentScheduleItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []scheduleModel.CurrentScheduleItem
	for _, items := range s.bucketItems {
		out = append(out, items...)
	}
	return out
}

type fieldUpdate struct {
	id                 string
	confirmationStatus string
	inboundMessageID   string
	upsert             bool
}

// fakeResponseStore records puts and field updates.
type fakeResponseStore struct {
	responses map[string]*scheduleModel.EventResponse
	updates   []fieldUpdate

	putErr    error
	updateErr error
}

func newFakeResponseStore() *fakeResponseStore {
	return &fakeResponseStore{responses: make(map[string]*scheduleModel.EventResponse)}
}

func (s *fakeResponseStore) PutResponse(_ context.Context, response *scheduleModel.EventResponse) error {
	if s.putErr != nil {
		return s.putErr
	}
	copied := *response
	s.responses[response.ID] = &copied
	return nil
}

func (s *fakeResponseStore) UpdateResponseFields(_ context.Context, id, confirmationStatus, inboundMessageID string, upsert bool) error {
	s.updates = append(s.updates, fieldUpdate{id, confirmationStatus, inboundMessageID, upsert})
	if s.updateErr != nil {
		return s.updateErr
	}
	existing, ok := s.responses[id]
	if !ok {
		if !upsert {
			return ErrResponseNotFound
		}
		existing = &scheduleModel.EventResponse{ID: id}
		s.responses[id] = existing
	}
	existing.ConfirmationStatus = confirmationStatus
	existing.InboundMessageID = &inboundMessageID
	return nil
}

type createdTask struct {
	name       string
	attributes map[string]string
}

type fakeVoiceTasker struct {
	tasks []createdTask
	err   error
}

func (v *fakeVoiceTasker) CreateTask(_ context.Context, name string, attributes map[string]string) error {
	if v.err != nil {
		return v.err
	}
	v.tasks = append(v.tasks, createdTask{name: name, attributes: attributes})
	return nil
}

type sentSMS struct {
	phoneNumber string
	body        string
}

type sentEmail struct {
	emailID string
	subject string
	body    string
}

type fakeMessenger struct {
	sms    []sentSMS
	emails []sentEmail

	smsErr   error
	emailErr error
}

func (m *fakeMessenger) SendSMS(_ context.Context, phoneNumber, body string) error {
	if m.smsErr != nil {
		return m.smsErr
	}
	m.sms = append(m.sms, sentSMS{phoneNumber: phoneNumber, body: body})
	return nil
}

func (m *fakeMessenger) SendEmail(_ context.Context, emailID, subject, body string) error {
	if m.emailErr != nil {
		return m.emailErr
	}
	m.emails = append(m.emails, sentEmail{emailID: emailID, subject: subject, body: body})
	return nil
}

type fakeDispatchRecorder struct {
	events []scheduleModel.DispatchEvent
}

func (r *fakeDispatchRecorder) RecordDispatch(_ context.Context, event *scheduleModel.DispatchEvent) error {
	r.events = append(r.events, *event)
	return nil
}
