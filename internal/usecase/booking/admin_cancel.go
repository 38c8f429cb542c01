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

// AdminCancelBooking cancels any user's confirmed booking.
type AdminCancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher

	now func() time.Time
}

func NewAdminCancelBooking(
	repo domain.Repository,
	auditd *audit.Dispatcher,
) *AdminCancelBooking {
	return &AdminCancelBooking{
		repo:  repo,
		audit: auditd,
		now:   timezone.Now,
	}
}

func (uc *AdminCancelBooking) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetConfirmedBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}

	if err := domain.Cancel(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "admin_booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
