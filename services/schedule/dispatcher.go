package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"patient-followup/logger"
	"patient-followup/models/protocol"
	scheduleModel "patient-followup/models/schedule"
	"patient-followup/utils"

	"github.com/jinzhu/now"
)

// EmailSubject is the fixed subject line for EMAIL reminders.
const EmailSubject = "Event Notification from Patient Care Service"

// Dispatcher fires due schedule items once per minute. Each tick queries the
// bucket for "now" and fans out per channel. There is no retry and no
// per-item idempotency token; a bucket evaluated twice is re-dispatched, which
// the tick serialization below makes unlikely but not impossible (e.g. two
// replicas).
type Dispatcher struct {
	Store     ScheduleStore
	Responses ResponseStore
	Voice     VoiceTasker
	Messenger Messenger
	// Audit is optional; when set every dispatch attempt is snapshotted.
	Audit DispatchRecorder

	// Interval defaults to one minute.
	Interval time.Duration
	// Now is swappable for tests.
	Now func() time.Time

	running atomic.Bool
}

// NewDispatcher creates a new dispatch scheduler
func NewDispatcher(store ScheduleStore, responses ResponseStore, voice VoiceTasker, messenger Messenger, audit DispatchRecorder) *Dispatcher {
	return &Dispatcher{
		Store:     store,
		Responses: responses,
		Voice:     voice,
		Messenger: messenger,
		Audit:     audit,
		Interval:  time.Minute,
		Now:       time.Now,
	}
}

// Run ticks until the context is cancelled. The first tick is aligned to the
// next wall-clock minute so bucket keys line up with the tick boundary.
func (d *Dispatcher) Run(ctx context.Context) {
	interval := d.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	firstTick := now.With(d.Now()).BeginningOfMinute().Add(interval)
	timer := time.NewTimer(time.Until(firstTick))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Dispatch scheduler stopped")
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

// tick runs one dispatch pass unless the previous pass is still running, in
// which case it is skipped rather than overlapped.
func (d *Dispatcher) tick(ctx context.Context) {
	if !d.running.CompareAndSwap(false, true) {
		logger.Warning("Previous dispatch pass still running, skipping this tick")
		return
	}
	defer d.running.Store(false)

	if err := d.DispatchDue(ctx); err != nil {
		logger.Error("Dispatch pass failed", err)
	}
}

// DispatchDue queries the bucket for the current minute and dispatches every
// item in it. Individual send failures are logged and do not stop the pass.
func (d *Dispatcher) DispatchDue(ctx context.Context) error {
	bucket := utils.BucketKey(d.Now())

	items, err := d.Store.ScheduleItemsByBucket(ctx, bucket)
	if err != nil {
		return fmt.Errorf("query schedule items for bucket %s: %w", bucket, err)
	}
	logger.Printf("Fetched %d schedule items for bucket %s", len(items), bucket)

	for i := range items {
		d.dispatchOne(ctx, &items[i])
	}
	return nil
}

func (d *Dispatcher) dispatchOne(ctx context.Context, item *scheduleModel.CurrentScheduleItem) {
	if item.EventType.NeedsPhoneNumber() && item.PhoneNumber == "" {
		err := fmt.Errorf("schedule item %s has no phone number", item.ID)
		logger.Error("Cannot dispatch schedule item "+item.ID, err)
		d.recordDispatch(ctx, item, err)
		return
	}
	if item.EventType.TracksConfirmation() {
		d.trackConfirmation(ctx, item)
	}

	var err error
	switch item.EventType {
	case protocol.EventTypeCall:
		err = d.dispatchCall(ctx, item)
	case protocol.EventTypeSMS:
		err = d.dispatchSMS(ctx, item)
	case protocol.EventTypeEmail:
		err = d.Messenger.SendEmail(ctx, item.EmailID, EmailSubject, item.Content)
	default:
		logger.Warning("Unhandled event type " + item.EventType.String() + " for schedule item " + item.ID)
		return
	}

	if err != nil {
		logger.Error("Failed to dispatch schedule item "+item.ID, err)
	}
	d.recordDispatch(ctx, item, err)
}

// dispatchCall hands the occurrence to the contact-routing service as a task.
// The scheduled time attribute is the dispatch instant, not the planned event
// time, matching how agents expect the task timestamp to read.
func (d *Dispatcher) dispatchCall(ctx context.Context, item *scheduleModel.CurrentScheduleItem) error {
	script, err := json.Marshal(item.Content)
	if err != nil {
		return fmt.Errorf("serialize talking script: %w", err)
	}

	return d.Voice.CreateTask(ctx, "Call: "+item.PatientName, map[string]string{
		"userName":      item.PatientName,
		"scheduledTime": d.Now().UTC().Format(time.RFC3339),
		"talkingScript": string(script),
	})
}

// trackConfirmation writes the Awaited record the correlator later updates.
// A tracking-record failure is logged and does not block the send.
func (d *Dispatcher) trackConfirmation(ctx context.Context, item *scheduleModel.CurrentScheduleItem) {
	response := &scheduleModel.EventResponse{
		ID:                 item.PhoneNumber + item.EventCode,
		PatientID:          item.PatientID,
		PatientName:        item.PatientName,
		PhoneNumber:        item.PhoneNumber,
		EmailID:            item.EmailID,
		BucketKey:          item.BucketKey,
		ConfirmationStatus: scheduleModel.ConfirmationStatusAwaited,
		InboundMessageID:   nil,
	}
	if err := d.Responses.PutResponse(ctx, response); err != nil {
		logger.Error("Failed to create event response "+response.ID, err)
	}
}

// dispatchSMS sends the message with the reply instructions appended.
func (d *Dispatcher) dispatchSMS(ctx context.Context, item *scheduleModel.CurrentScheduleItem) error {
	body := item.Content + "(Reply OK [code] to confirm or CANCEL [code] to cancel. Your code is " + item.EventCode + ")"
	return d.Messenger.SendSMS(ctx, item.PhoneNumber, body)
}

func (d *Dispatcher) recordDispatch(ctx context.Context, item *scheduleModel.CurrentScheduleItem, dispatchErr error) {
	if d.Audit == nil {
		return
	}

	event := &scheduleModel.DispatchEvent{
		ScheduleItemID: item.ID,
		PatientID:      item.PatientID,
		PatientName:    item.PatientName,
		PhoneNumber:    item.PhoneNumber,
		EmailID:        item.EmailID,
		BucketKey:      item.BucketKey,
		EventType:      item.EventType,
		EventCode:      item.EventCode,
		Content:        item.Content,
		Outcome:        scheduleModel.DispatchOutcomeSent,
	}
	if dispatchErr != nil {
		event.Outcome = scheduleModel.DispatchOutcomeFailed
		event.ErrorText = dispatchErr.Error()
	}

	if err := d.Audit.RecordDispatch(ctx, event); err != nil {
		logger.Error("Failed to record dispatch event for schedule item "+item.ID, err)
	}
}
