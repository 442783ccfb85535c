package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"patient-followup/models/protocol"
	scheduleModel "patient-followup/models/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(store *fakeStore, responses *fakeResponseStore, voice *fakeVoiceTasker, messenger *fakeMessenger, audit *fakeDispatchRecorder) *Dispatcher {
	// Avoid storing a typed-nil *fakeDispatchRecorder in the interface so the
	// dispatcher's Audit == nil guard still applies when no recorder is given.
	var recorder DispatchRecorder
	if audit != nil {
		recorder = audit
	}
	d := NewDispatcher(store, responses, voice, messenger, recorder)
	d.Now = func() time.Time {
		return time.Date(2024, 1, 1, 9, 0, 30, 0, time.UTC)
	}
	return d
}

func scheduleItem(eventType protocol.EventType) scheduleModel.CurrentScheduleItem {
	return scheduleModel.CurrentScheduleItem{
		ID:          "item-1",
		PatientID:   "patient-1",
		PatientName: "Jordan Smith",
		EventID:     "event-1",
		BucketKey:   "2024/01/01-09:00",
		EventTime:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Content:     "Take your medication",
		EventType:   eventType,
		EventCode:   "4821",
		PhoneNumber: "+15551234567",
		EmailID:     "jordan@example.com",
	}
}

func TestDispatchDueQueriesCurrentMinuteBucket(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(store, newFakeResponseStore(), &fakeVoiceTasker{}, &fakeMessenger{}, nil)

	err := d.DispatchDue(context.Background())
	require.NoError(t, err)

	// 09:00:30 truncates to the 09:00 bucket.
	require.Len(t, store.queriedBuckets, 1)
	assert.Equal(t, "2024/01/01-09:00", store.queriedBuckets[0])
}

func TestDispatchSMS(t *testing.T) {
	store := newFakeStore()
	responses := newFakeResponseStore()
	messenger := &fakeMessenger{}
	item := scheduleItem(protocol.EventTypeSMS)
	store.bucketItems[item.BucketKey] = []scheduleModel.CurrentScheduleItem{item}

	d := newTestDispatcher(store, responses, &fakeVoiceTasker{}, messenger, nil)
	require.NoError(t, d.DispatchDue(context.Background()))

	require.Len(t, messenger.sms, 1)
	assert.Equal(t, "+15551234567", messenger.sms[0].phoneNumber)
	assert.Equal(t, "Take your medication(Reply OK [code] to confirm or CANCEL [code] to cancel. Your code is 4821)", messenger.sms[0].body)

	// The Awaited tracking record is keyed on phone+code.
	response, ok := responses.responses["+155512345674821"]
	require.True(t, ok)
	assert.Equal(t, scheduleModel.ConfirmationStatusAwaited, response.ConfirmationStatus)
	assert.True(t, response.IsAwaited())
	assert.Equal(t, "patient-1", response.PatientID)
	assert.Nil(t, response.InboundMessageID)
}

func TestDispatchSMSSendsDespiteTrackingFailure(t *testing.T) {
	store := newFakeStore()
	responses := newFakeResponseStore()
	responses.putErr = errors.New("store unavailable")
	messenger := &fakeMessenger{}
	item := scheduleItem(protocol.EventTypeSMS)
	store.bucketItems[item.BucketKey] = []scheduleModel.CurrentScheduleItem{item}

	d := newTestDispatcher(store, responses, &fakeVoiceTasker{}, messenger, nil)
	require.NoError(t, d.DispatchDue(context.Background()))

	assert.Len(t, messenger.sms, 1)
}

func TestDispatchEmail(t *testing.T) {
	store := newFakeStore()
	responses := newFakeResponseStore()
	messenger := &fakeMessenger{}
	item := scheduleItem(protocol.EventTypeEmail)
	store.bucketItems[item.BucketKey] = []scheduleModel.CurrentScheduleItem{item}

	d := newTestDispatcher(store, responses, &fakeVoiceTasker{}, messenger, nil)
	require.NoError(t, d.DispatchDue(context.Background()))

	require.Len(t, messenger.emails, 1)
	assert.Equal(t, "jordan@example.com", messenger.emails[0].emailID)
	assert.Equal(t, EmailSubject, messenger.emails[0].subject)
	assert.Equal(t, "Take your medication", messenger.emails[0].body)

	// Email occurrences are not confirmation-tracked.
	assert.Empty(t, responses.responses)
}

func TestDispatchCall(t *testing.T) {
	store := newFakeStore()
	voice := &fakeVoiceTasker{}
	item := scheduleItem(protocol.EventTypeCall)
	store.bucketItems[item.BucketKey] = []scheduleModel.CurrentScheduleItem{item}

	d := newTestDispatcher(store, newFakeResponseStore(), voice, &fakeMessenger{}, nil)
	require.NoError(t, d.DispatchDue(context.Background()))

	require.Len(t, voice.tasks, 1)
	task := voice.tasks[0]
	assert.Equal(t, "Call: Jordan Smith", task.name)
	assert.Equal(t, "Jordan Smith", task.attributes["userName"])
	assert.Equal(t, "2024-01-01T09:00:30Z", task.attributes["scheduledTime"])
	assert.Equal(t, `"Take your medication"`, task.attributes["talkingScript"])
}

func TestDispatchMissingPhoneNumberRecordedAsFailure(t *testing.T) {
	store := newFakeStore()
	responses := newFakeResponseStore()
	messenger := &fakeMessenger{}
	audit := &fakeDispatchRecorder{}
	item := scheduleItem(protocol.EventTypeSMS)
	item.PhoneNumber = ""
	store.bucketItems[item.BucketKey] = []scheduleModel.CurrentScheduleItem{item}

	d := newTestDispatcher(store, responses, &fakeVoiceTasker{}, messenger, audit)
	require.NoError(t, d.DispatchDue(context.Background()))

	assert.Empty(t, messenger.sms)
	assert.Empty(t, responses.responses)
	require.Len(t, audit.events, 1)
	assert.Equal(t, scheduleModel.DispatchOutcomeFailed, audit.events[0].Outcome)
	assert.Contains(t, audit.events[0].ErrorText, "no phone number")
}

func TestDispatchSkipsUnknownEventType(t *testing.T) {
	store := newFakeStore()
	messenger := &fakeMessenger{}
	voice := &fakeVoiceTasker{}
	audit := &fakeDispatchRecorder{}
	item := scheduleItem(protocol.EventType("FAX"))
	store.bucketItems[item.BucketKey] = []scheduleModel.CurrentScheduleItem{item}

	d := newTestDispatcher(store, newFakeResponseStore(), voice, messenger, audit)
	require.NoError(t, d.DispatchDue(context.Background()))

	assert.Empty(t, messenger.sms)
	assert.Empty(t, messenger.emails)
	assert.Empty(t, voice.tasks)
	assert.Empty(t, audit.events)
}

func TestDispatchRecordsAuditOutcome(t *testing.T) {
	store := newFakeStore()
	messenger := &fakeMessenger{smsErr: errors.New("carrier rejected")}
	audit := &fakeDispatchRecorder{}
	failing := scheduleItem(protocol.EventTypeSMS)
	ok := scheduleItem(protocol.EventTypeEmail)
	ok.ID = "item-2"
	store.bucketItems[failing.BucketKey] = []scheduleModel.CurrentScheduleItem{failing, ok}

	d := newTestDispatcher(store, newFakeResponseStore(), &fakeVoiceTasker{}, messenger, audit)
	require.NoError(t, d.DispatchDue(context.Background()))

	require.Len(t, audit.events, 2)
	assert.Equal(t, scheduleModel.DispatchOutcomeFailed, audit.events[0].Outcome)
	assert.Equal(t, "carrier rejected", audit.events[0].ErrorText)
	assert.Equal(t, "item-1", audit.events[0].ScheduleItemID)
	assert.Equal(t, scheduleModel.DispatchOutcomeSent, audit.events[1].Outcome)
	assert.Empty(t, audit.events[1].ErrorText)
}

func TestTickSkipsWhilePreviousPassRunning(t *testing.T) {
	store := newFakeStore()
	d := newTestDispatcher(store, newFakeResponseStore(), &fakeVoiceTasker{}, &fakeMessenger{}, nil)

	d.running.Store(true)
	d.tick(context.Background())
	assert.Empty(t, store.queriedBuckets)

	d.running.Store(false)
	d.tick(context.Background())
	assert.Len(t, store.queriedBuckets, 1)
}

func TestDispatchSendFailureDoesNotStopPass(t *testing.T) {
	store := newFakeStore()
	messenger := &fakeMessenger{emailErr: errors.New("smtp down")}
	voice := &fakeVoiceTasker{}
	email := scheduleItem(protocol.EventTypeEmail)
	call := scheduleItem(protocol.EventTypeCall)
	call.ID = "item-2"
	store.bucketItems[email.BucketKey] = []scheduleModel.CurrentScheduleItem{email, call}

	d := newTestDispatcher(store, newFakeResponseStore(), voice, messenger, nil)
	require.NoError(t, d.DispatchDue(context.Background()))

	assert.Len(t, voice.tasks, 1)
}
