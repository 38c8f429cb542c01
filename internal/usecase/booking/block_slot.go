package booking

import (
	"context"

	"github.com/reservaestudios/studio-booking-api/internal/audit"
	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/models"
)

// BlockSlot removes a slot from circulation by inserting a blocked
// pseudo-booking with no user. The active-slot index keeps blocks and
// bookings mutually exclusive.
type BlockSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBlockSlot(
	repo domain.Repository,
	auditd *audit.Dispatcher,
) *BlockSlot {
	return &BlockSlot{
		repo:  repo,
		audit: auditd,
	}
}

func (uc *BlockSlot) Execute(
	ctx context.Context,
	adminID uint,
	timeSlotID uint,
) (*models.Booking, error) {

	if timeSlotID == 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidInput, "timeSlotId is required")
	}

	slot, err := uc.repo.GetTimeSlot(ctx, timeSlotID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeSlotNotFound)
	}

	b := &models.Booking{
		UserID:      nil,
		StudioID:    slot.StudioID,
		TimeSlotID:  slot.ID,
		BookingDate: slot.SlotDate,
		Status:      string(domain.StatusBlocked),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "slot_blocked",
		Entity:   "time_slot",
		EntityID: &slot.ID,
	})

	return b, nil
}

// UnblockSlot deletes the blocked pseudo-booking for a slot.
type UnblockSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUnblockSlot(
	repo domain.Repository,
	auditd *audit.Dispatcher,
) *UnblockSlot {
	return &UnblockSlot{
		repo:  repo,
		audit: auditd,
	}
}

func (uc *UnblockSlot) Execute(
	ctx context.Context,
	adminID uint,
	timeSlotID uint,
) (*models.Booking, error) {

	b, err := uc.repo.DeleteBlockedForSlot(ctx, timeSlotID)
	if err != nil {
		return nil, httperr.ErrBusinessMsg(httperr.CodeSlotNotFound, "blocked slot not found")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "slot_unblocked",
		Entity:   "time_slot",
		EntityID: &timeSlotID,
	})

	return b, nil
}
