package domain

import "time"

// ShiftRequestStatus enumerates lifecycle states for a coverage request.
type ShiftRequestStatus string

const (
	ShiftRequestStatusPending  ShiftRequestStatus = "PENDING"
	ShiftRequestStatusAccepted ShiftRequestStatus = "ACCEPTED"
	ShiftRequestStatusDeclined ShiftRequestStatus = "DECLINED"
)

// Resolved reports whether the status is terminal.
func (s ShiftRequestStatus) Resolved() bool {
	return s == ShiftRequestStatusAccepted || s == ShiftRequestStatusDeclined
}

// ShiftRequest is the coverage request addressed to one responder. It is keyed
// by the responder's normalized identity; resolved records are kept until a new
// report re-arms the same responder.
type ShiftRequest struct {
	ID          string             `json:"id"`
	Responder   string             `json:"responder"`
	Status      ShiftRequestStatus `json:"status"`
	ReportedBy  string             `json:"reported_by,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	RespondedAt *time.Time         `json:"responded_at,omitempty"`
}

// IsPending reports whether the responder still owes an answer.
func (r *ShiftRequest) IsPending() bool {
	return r != nil && r.Status == ShiftRequestStatusPending
}

// Notification is an outbound message waiting to be delivered.
type Notification struct {
	To   string
	Body string
}
