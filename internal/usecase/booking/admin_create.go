package booking

import (
	"context"

	"github.com/reservaestudios/studio-booking-api/internal/audit"
	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/models"
)

type AdminCreateBookingInput struct {
	AdminID    uint
	UserID     uint
	TimeSlotID uint
}

// AdminCreateBooking books a slot on behalf of any user. Administrators skip
// the weekend, category, quota and same-studio rules, but slot exclusivity
// still holds.
type AdminCreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAdminCreateBooking(
	repo domain.Repository,
	auditd *audit.Dispatcher,
) *AdminCreateBooking {
	return &AdminCreateBooking{
		repo:  repo,
		audit: auditd,
	}
}

func (uc *AdminCreateBooking) Execute(
	ctx context.Context,
	in AdminCreateBookingInput,
) (*models.Booking, error) {

	if in.UserID == 0 || in.TimeSlotID == 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidInput, "missing required fields")
	}

	slot, err := uc.repo.GetTimeSlot(ctx, in.TimeSlotID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeSlotNotFound)
	}

	if _, err := uc.repo.GetUserByID(ctx, in.UserID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}

	taken, err := uc.repo.SlotHasActiveBooking(ctx, in.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	b := &models.Booking{
		UserID:      &in.UserID,
		StudioID:    slot.StudioID,
		TimeSlotID:  slot.ID,
		BookingDate: slot.SlotDate,
		Status:      string(domain.StatusConfirmed),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.AdminID,
		Action:   "admin_booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]uint{"for_user": in.UserID},
	})

	return b, nil
}
