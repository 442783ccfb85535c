package protocol

// EventType is the delivery channel of a reminder event.
type EventType string

const (
	EventTypeCall  EventType = "CALL"
	EventTypeSMS   EventType = "SMS"
	EventTypeEmail EventType = "EMAIL"
)

// Helper methods for EventType
func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeCall, EventTypeSMS, EventTypeEmail:
		return true
	default:
		return false
	}
}

// NeedsPhoneNumber returns true if dispatching this event type requires a
// patient phone number.
func (et EventType) NeedsPhoneNumber() bool {
	return et == EventTypeCall || et == EventTypeSMS
}

// TracksConfirmation returns true if dispatching this event type creates a
// confirmation tracking record.
func (et EventType) TracksConfirmation() bool {
	return et == EventTypeSMS
}

// GetAllEventTypes returns all valid event types
func GetAllEventTypes() []EventType {
	return []EventType{
		EventTypeCall,
		EventTypeSMS,
		EventTypeEmail,
	}
}
