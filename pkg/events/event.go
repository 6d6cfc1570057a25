package events

import "time"

// Event is the contract every domain event satisfies.
type Event interface {
	// EventType returns the stable code for this event (e.g. "TRIP_CONFIRMED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the services.
const (
	TypeTripConfirmed  = "TRIP_CONFIRMED"
	TypeTripExpired    = "TRIP_EXPIRED"
	TypeTierSelected   = "TIER_SELECTED"
	TypePaymentSettled = "PAYMENT_SETTLED"
)

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
