package protocol

// CreateProtocolRequest represents the request payload for creating a protocol
type CreateProtocolRequest struct {
	Name         string `json:"name" validate:"required"`
	ExpireInDays int    `json:"expire_in_days" validate:"min=0"`
}

// CreateEventRequest represents the request payload for adding a reminder
// event to a protocol
type CreateEventRequest struct {
	Type                   string `json:"type" validate:"required,oneof=CALL SMS EMAIL"`
	Content                string `json:"content" validate:"required"`
	RelativeTimeMinutes    int    `json:"relative_time_minutes" validate:"min=0"`
	RecurringFrequencyDays int    `json:"recurring_frequency_days" validate:"min=0"`
}
