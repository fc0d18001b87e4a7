package domain

import (
	"time"
)

type EventType string

const (
	EventAppointmentCreated  EventType = "appointment.created"
	EventAppointmentUpdated  EventType = "appointment.updated"
	EventAppointmentDeleted  EventType = "appointment.deleted"
	EventBlockedSlotsChanged EventType = "blocked_slot.changed"
)

// Event is pushed to connected admin dashboards.
type Event struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
