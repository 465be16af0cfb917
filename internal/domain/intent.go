package domain

// Intent is the classified meaning of an inbound text.
type Intent string

const (
	IntentSick    Intent = "SICK"
	IntentAccept  Intent = "ACCEPT"
	IntentDecline Intent = "DECLINE"
	IntentUnknown Intent = "UNKNOWN"
)

// Decision is a responder's answer to a pending request.
type Decision string

const (
	DecisionAccept  Decision = "ACCEPT"
	DecisionDecline Decision = "DECLINE"
)

// Status returns the terminal status the decision resolves to.
func (d Decision) Status() ShiftRequestStatus {
	if d == DecisionAccept {
		return ShiftRequestStatusAccepted
	}
	return ShiftRequestStatusDeclined
}
