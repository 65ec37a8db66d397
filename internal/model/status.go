package model

// Status is the closed set of appointment lifecycle states.
type Status string

const (
	StatusReserved  Status = "reserved"
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusReserved, StatusRequested, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// CanTransition is the exhaustive legal-transition function. Same-state
// transitions are handled by callers as no-ops and return false here.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusReserved:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusRequested:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled || to == StatusNoShow
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return false
	}
	return false
}
