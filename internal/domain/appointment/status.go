package appointment

import "github.com/BruksfildServices01/barbershop-manager/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// allowed lists the forward moves of the lifecycle. Terminal states have none.
var allowed = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// ===============================
// Validations
// ===============================

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// CanTransition rejects moves the lifecycle does not allow. Repeating the
// current status is accepted so the caller can re-stamp its timestamp.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

func (s Status) Terminal() bool {
	return len(allowed[s]) == 0
}

// InitialStatus is the status of a booking nobody has reviewed yet.
func InitialStatus() Status {
	return StatusPending
}
