package events

import (
	"time"

	"github.com/spec-kit/shift-coverage-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShiftReported EventType = "shift_reported"
	EventShiftAccepted EventType = "shift_accepted"
	EventShiftDeclined EventType = "shift_declined"
)

// Event represents a lifecycle change of a shift request.
type Event struct {
	ID        string              `json:"id"`
	Type      EventType           `json:"type"`
	RequestID string              `json:"request_id"`
	Actor     string              `json:"actor"`
	Timestamp time.Time           `json:"timestamp"`
	Request   domain.ShiftRequest `json:"request"`
}
