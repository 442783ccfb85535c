package repository

import (
	"context"
	"errors"
	"fmt"

	"patient-followup/models/patient"
	"patient-followup/models/protocol"
	scheduleModel "patient-followup/models/schedule"
	scheduleService "patient-followup/services/schedule"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleRepository backs the scheduling interfaces with GORM/Postgres. One
// repository implements ScheduleStore, ResponseStore and DispatchRecorder so
// the wiring stays a single handle, the way the service structs hold one DB.
type ScheduleRepository struct {
	DB *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{DB: db}
}

func (r *ScheduleRepository) GetProtocol(ctx context.Context, id string) (*protocol.Protocol, error) {
	var proto protocol.Protocol
	if err := r.DB.WithContext(ctx).First(&proto, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find protocol %s: %w", id, err)
	}
	return &proto, nil
}

func (r *ScheduleRepository) GetPatient(ctx context.Context, id string) (*patient.Patient, error) {
	var pat patient.Patient
	if err := r.DB.WithContext(ctx).First(&pat, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find patient %s: %w", id, err)
	}
	return &pat, nil
}

func (r *ScheduleRepository) EventsByProtocol(ctx context.Context, protocolID string) ([]protocol.Event, error) {
	var events []protocol.Event
	err := r.DB.WithContext(ctx).
		Where("protocol_id = ?", protocolID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("find events for protocol %s: %w", protocolID, err)
	}
	return events, nil
}

// BatchPutScheduleItems writes one batch in a single insert. Callers chunk to
// MaxBatchSize; anything larger is rejected instead of silently split.
func (r *ScheduleRepository) BatchPutScheduleItems(ctx context.Context, items []scheduleModel.CurrentScheduleItem) error {
	if len(items) == 0 {
		return nil
	}
	if len(items) > scheduleService.MaxBatchSize {
		return fmt.Errorf("batch of %d exceeds the %d item limit", len(items), scheduleService.MaxBatchSize)
	}
	if err := r.DB.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("insert schedule item batch: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) ScheduleItemsByBucket(ctx context.Context, bucketKey string) ([]scheduleModel.CurrentScheduleItem, error) {
	var items []scheduleModel.CurrentScheduleItem
	err := r.DB.WithContext(ctx).
		Where("bucket_key = ?", bucketKey).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("find schedule items for bucket %s: %w", bucketKey, err)
	}
	return items, nil
}

func (r *ScheduleRepository) PutResponse(ctx context.Context, response *scheduleModel.EventResponse) error {
	if err := r.DB.WithContext(ctx).Create(response).Error; err != nil {
		return fmt.Errorf("create event response %s: %w", response.ID, err)
	}
	return nil
}

// UpdateResponseFields applies the correlator's field-level update as one
// atomic statement. With upsert true a missing row is created carrying only
// the updated fields; with upsert false a missing row is ErrResponseNotFound.
func (r *ScheduleRepository) UpdateResponseFields(ctx context.Context, id, confirmationStatus, inboundMessageID string, upsert bool) error {
	if upsert {
		response := scheduleModel.EventResponse{
			ID:                 id,
			ConfirmationStatus: confirmationStatus,
			InboundMessageID:   &inboundMessageID,
		}
		err := r.DB.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"confirmation_status": confirmationStatus,
					"inbound_message_id":  inboundMessageID,
				}),
			}).
			Create(&response).Error
		if err != nil {
			return fmt.Errorf("upsert event response %s: %w", id, err)
		}
		return nil
	}

	tx := r.DB.WithContext(ctx).
		Model(&scheduleModel.EventResponse{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"confirmation_status": confirmationStatus,
			"inbound_message_id":  inboundMessageID,
		})
	if tx.Error != nil {
		return fmt.Errorf("update event response %s: %w", id, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return scheduleService.ErrResponseNotFound
	}
	return nil
}

// RecordDispatch appends a snapshot row per dispatch attempt, mirroring the
// schedule item fields the way the event tables mirror their source rows.
func (r *ScheduleRepository) RecordDispatch(ctx context.Context, event *scheduleModel.DispatchEvent) error {
	if err := r.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create dispatch event for schedule item %s: %w", event.ScheduleItemID, err)
	}
	return nil
}

// IsNotFound reports whether err is a record-not-found from the store.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
