package seeders

import (
	"log"

	protocolModel "patient-followup/models/protocol"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedDemoProtocol installs a post-discharge follow-up protocol so a fresh
// environment has something to dispatch. Safe to run repeatedly; it keys off
// the protocol name.
func SeedDemoProtocol(db *gorm.DB) {
	log.Printf("🔍 Checking demo protocol data integrity...")

	var existing protocolModel.Protocol
	err := db.First(&existing, "name = ?", "Post-Discharge Follow-Up").Error
	if err == nil {
		log.Printf("✅ Demo protocol already present: %s", existing.ID)
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("❌ Failed to check demo protocol: %v", err)
		return
	}

	proto := protocolModel.Protocol{
		ID:           uuid.NewString(),
		Name:         "Post-Discharge Follow-Up",
		ExpireInDays: 30,
	}
	if err := db.Create(&proto).Error; err != nil {
		log.Printf("❌ Failed to seed demo protocol: %v", err)
		return
	}

	events := []protocolModel.Event{
		{
			ID:                     uuid.NewString(),
			ProtocolID:             proto.ID,
			Type:                   protocolModel.EventTypeCall,
			Content:                "Hello, this is your care team calling to check how you are feeling after discharge.",
			RelativeTimeMinutes:    60,
			RecurringFrequencyDays: 7,
			Recurring:              true,
		},
		{
			ID:                     uuid.NewString(),
			ProtocolID:             proto.ID,
			Type:                   protocolModel.EventTypeSMS,
			Content:                "Reminder: please take your prescribed medication today.",
			RelativeTimeMinutes:    120,
			RecurringFrequencyDays: 1,
			Recurring:              true,
		},
		{
			ID:                     uuid.NewString(),
			ProtocolID:             proto.ID,
			Type:                   protocolModel.EventTypeEmail,
			Content:                "Your weekly recovery summary is ready. Contact your care team with any concerns.",
			RelativeTimeMinutes:    0,
			RecurringFrequencyDays: 7,
			Recurring:              true,
		},
	}
	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			log.Printf("❌ Failed to seed demo event %s: %v", events[i].Type, err)
		}
	}

	log.Printf("✅ Seeded demo protocol %s with %d events", proto.ID, len(events))
}
