package booking

import (
	"context"
	"time"

	"github.com/reservaestudios/studio-booking-api/internal/audit"
	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/models"
	"github.com/reservaestudios/studio-booking-api/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	now func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	auditd *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: auditd,
		now:   timezone.Now,
	}
}

// Execute cancels the caller's own confirmed booking. The slot becomes
// available for new bookings as soon as the status flips.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetConfirmedBookingForUser(ctx, bookingID, userID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeBookingNotFound,
			"booking not found or already cancelled",
		)
	}

	if err := domain.Cancel(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
