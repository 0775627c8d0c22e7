package queue

import (
	"strings"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
)

// ===============================
// Entry Status
// ===============================

type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Payment Method
// ===============================

type PaymentMethod string

const (
	PaymentPix   PaymentMethod = "pix"
	PaymentMoney PaymentMethod = "money"
	PaymentCard  PaymentMethod = "card"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch pm := PaymentMethod(strings.ToLower(strings.TrimSpace(s))); pm {
	case PaymentPix, PaymentMoney, PaymentCard:
		return pm, nil
	}
	return "", httperr.ErrValidation("invalid_payment")
}

// ===============================
// Validations
// ===============================

// CanComplete: só quem está esperando pode ser atendido
func CanComplete(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrPrecondition("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrPrecondition("invalid_state")
	}
	return nil
}

func CanUndo(current Status) error {
	if current != StatusDone {
		return httperr.ErrPrecondition("invalid_state")
	}
	return nil
}

func CanEdit(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrPrecondition("invalid_state")
	}
	return nil
}

func CanRate(current Status) error {
	if current != StatusDone {
		return httperr.ErrPrecondition("invalid_state")
	}
	return nil
}

func ValidateRating(stars int) error {
	if stars < 1 || stars > 5 {
		return httperr.ErrValidation("invalid_rating")
	}
	return nil
}

func InitialStatus() Status {
	return StatusWaiting
}
