package schedule

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"time"

	"patient-followup/logger"
	"patient-followup/models/patient"
	"patient-followup/models/protocol"
	scheduleModel "patient-followup/models/schedule"
	"patient-followup/utils"

	"github.com/google/uuid"
)

// MaxBatchSize is the largest number of schedule items persisted per store
// request.
const MaxBatchSize = 10

// Expander turns one encounter-created notification into the full set of
// schedule items implied by the encounter's protocol. It is deliberately not
// idempotent: re-delivery of the same notification produces a second set of
// items with fresh identifiers and event codes.
type Expander struct {
	Store ScheduleStore
}

// NewExpander creates a new expansion engine
func NewExpander(store ScheduleStore) *Expander {
	return &Expander{Store: store}
}

// Expand computes and persists every occurrence for the given encounter.
// A missing protocol or patient fails only this encounter; batch write
// failures are logged and the remaining batches are still attempted.
func (e *Expander) Expand(ctx context.Context, notification EncounterCreated) error {
	proto, err := e.Store.GetProtocol(ctx, notification.ProtocolID)
	if err != nil {
		return fmt.Errorf("fetch protocol %s: %w", notification.ProtocolID, err)
	}

	pat, err := e.Store.GetPatient(ctx, notification.PatientID)
	if err != nil {
		return fmt.Errorf("fetch patient %s: %w", notification.PatientID, err)
	}

	events, err := e.Store.EventsByProtocol(ctx, notification.ProtocolID)
	if err != nil {
		return fmt.Errorf("fetch events for protocol %s: %w", notification.ProtocolID, err)
	}

	var items []scheduleModel.CurrentScheduleItem
	for i := range events {
		generated, err := buildScheduleItems(proto, pat, &events[i], notification.StartedOn)
		if err != nil {
			return fmt.Errorf("build schedule items for event %s: %w", events[i].ID, err)
		}
		items = append(items, generated...)
	}

	logger.Printf("Expanded encounter %s into %d schedule items", notification.EncounterID, len(items))

	// Sequential chunked writes. A failed chunk does not roll back earlier
	// chunks and does not stop later ones; partial success is accepted.
	for start := 0; start < len(items); start += MaxBatchSize {
		end := start + MaxBatchSize
		if end > len(items) {
			end = len(items)
		}
		if err := e.Store.BatchPutScheduleItems(ctx, items[start:end]); err != nil {
			logger.Error(fmt.Sprintf("Failed to persist schedule item batch %d-%d for encounter %s", start, end, notification.EncounterID), err)
		}
	}

	return nil
}

// buildScheduleItems generates the occurrences for one protocol event.
//
// The expiry horizon is anchored at startedOn + relativeTimeMinutes +
// expireInDays, so the relative offset is applied to both the first fire time
// and the horizon. That matches the live system; anchoring expiry at startedOn
// alone would drop or add boundary occurrences.
func buildScheduleItems(proto *protocol.Protocol, pat *patient.Patient, event *protocol.Event, startedOn time.Time) ([]scheduleModel.CurrentScheduleItem, error) {
	count := iterationCount(proto.ExpireInDays, event.RecurringFrequencyDays)
	if count == 0 {
		return nil, nil
	}

	firstFire := startedOn.Add(time.Duration(event.RelativeTimeMinutes) * time.Minute)
	expiresOn := firstFire.Add(time.Duration(proto.ExpireInDays) * 24 * time.Hour)

	items := make([]scheduleModel.CurrentScheduleItem, 0, count)
	for i := 0; i < count; i++ {
		fireAt := firstFire.AddDate(0, 0, i*event.RecurringFrequencyDays)
		// Strictly before the horizon; an occurrence landing exactly on
		// expiry is dropped.
		if !fireAt.Before(expiresOn) {
			continue
		}

		code, err := GenerateEventCode()
		if err != nil {
			return nil, fmt.Errorf("generate event code: %w", err)
		}

		items = append(items, scheduleModel.CurrentScheduleItem{
			ID:          uuid.NewString(),
			PatientID:   pat.ID,
			PatientName: pat.Name,
			EventID:     event.ID,
			BucketKey:   utils.BucketKey(fireAt),
			EventTime:   fireAt,
			Content:     event.Content,
			EventType:   event.Type,
			EventCode:   code,
			RetryCount:  0,
			RetryTime:   nil,
			PhoneNumber: pat.PhoneNumber,
			EmailID:     pat.EmailID,
		})
	}

	return items, nil
}

// iterationCount decides how many candidate occurrences an event yields.
// Rounding is half-away-from-zero, not truncation: 30/7 gives 4, 30/4 gives 8.
func iterationCount(expireInDays, recurringFrequencyDays int) int {
	if expireInDays <= 0 {
		return 0
	}
	if recurringFrequencyDays <= 0 {
		return 1
	}
	return int(math.Round(float64(expireInDays) / float64(recurringFrequencyDays)))
}

// GenerateEventCode generates a random 4-digit confirmation code. Leading
// zeros are kept, so the space is exactly 0000-9999. Collisions between
// concurrently pending codes for the same phone number are not checked.
func GenerateEventCode() (string, error) {
	code := ""
	for i := 0; i < 4; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += n.String()
	}
	return code, nil
}
