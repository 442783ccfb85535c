package protocol

import (
	"time"
)

// Event is one reminder template within a protocol: what to say, over which
// channel, when to fire first and how often to repeat.
type Event struct {
	ID string `gorm:"type:varchar(64);primaryKey" json:"id"`

	ProtocolID string   `gorm:"type:varchar(64);not null;index" json:"protocol_id"`
	Protocol   Protocol `gorm:"foreignKey:ProtocolID" json:"protocol,omitempty"`

	Type    EventType `gorm:"type:varchar(10);not null" json:"type"`
	Content string    `gorm:"type:text;not null" json:"content"`

	// Offset in minutes from the encounter start to the first occurrence.
	RelativeTimeMinutes int `gorm:"not null;default:0" json:"relative_time_minutes"`
	// 0 means the event fires once and never repeats.
	RecurringFrequencyDays int  `gorm:"not null;default:0" json:"recurring_frequency_days"`
	Recurring              bool `gorm:"default:false" json:"recurring"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
