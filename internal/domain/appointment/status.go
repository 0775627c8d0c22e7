package appointment

import "github.com/BruksfildServices01/barber-queue/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled    Status = "scheduled"
	StatusMovedToQueue Status = "moved_to_queue"
	StatusCancelled    Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrPrecondition("invalid_state")
	}
	return nil
}

// CanPromote: promoção é única
func CanPromote(current Status) error {
	switch current {
	case StatusScheduled:
		return nil
	case StatusMovedToQueue:
		return httperr.ErrPrecondition("already_moved")
	}
	return httperr.ErrPrecondition("invalid_state")
}

func InitialStatus() Status {
	return StatusScheduled
}
