package booking

import "github.com/reservaestudios/studio-booking-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusBlocked   Status = "blocked"
)

// ===============================
// Validations
// ===============================

// CanCancel defines whether a booking may still be cancelled.
func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}
	return nil
}

func InitialStatus() Status {
	return StatusConfirmed
}
