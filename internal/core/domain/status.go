package domain

import "errors"

// RequestStatus is the lifecycle state of a blood request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusCompleted RequestStatus = "Completed"
	StatusRejected  RequestStatus = "Rejected"
)

// Lifecycle errors
var (
	ErrUnknownStatus     = errors.New("unknown request status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// transitions is the exhaustive table of legal moves. Pending is the only
// non-terminal state; nothing leaves Completed or Rejected, and Pending is
// never a valid transition target (a Pending->Pending write is rejected).
var transitions = map[RequestStatus]map[RequestStatus]bool{
	StatusPending: {
		StatusCompleted: true,
		StatusRejected:  true,
	},
	StatusCompleted: {},
	StatusRejected:  {},
}

// ParseStatus validates a raw status string from the wire.
func ParseStatus(raw string) (RequestStatus, error) {
	switch RequestStatus(raw) {
	case StatusPending, StatusCompleted, StatusRejected:
		return RequestStatus(raw), nil
	}
	return "", ErrUnknownStatus
}

// IsTerminal reports whether no transition may leave the given status.
func (s RequestStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether current -> next is a legal move.
func CanTransition(current, next RequestStatus) bool {
	return transitions[current][next]
}

// Transition validates current -> next and returns the new status. Illegal
// moves, including repeats of an already-applied transition, return
// ErrInvalidTransition so callers never silently succeed.
func Transition(current, next RequestStatus) (RequestStatus, error) {
	if _, ok := transitions[current]; !ok {
		return "", ErrUnknownStatus
	}
	if _, err := ParseStatus(string(next)); err != nil {
		return "", err
	}
	if !CanTransition(current, next) {
		return "", ErrInvalidTransition
	}
	return next, nil
}
