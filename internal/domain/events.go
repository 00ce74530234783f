package domain

import "time"

// EventType тип доменного события
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingModified  EventType = "booking.modified"
	EventDayCancelled     EventType = "day.cancelled"
)

// Event доменное событие для внешних потребителей (уведомления, аналитика)
type Event struct {
	Type         EventType
	BusinessCode string
	AggregateID  string
	OccurredAt   time.Time
	Payload      map[string]interface{}
}
