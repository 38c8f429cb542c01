package booking

import (
	"context"
	"time"

	"github.com/reservaestudios/studio-booking-api/internal/audit"
	"github.com/reservaestudios/studio-booking-api/internal/domain/access"
	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/holidays"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/models"
	"github.com/reservaestudios/studio-booking-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID     uint
	StudioID   uint
	TimeSlotID uint

	BookingDate string
}

// ======================================================
// USE CASE
// ======================================================

// maxActiveBookings is the per-user confirmed-booking quota.
const maxActiveBookings = 2

type CreateBooking struct {
	repo     domain.Repository
	calendar *holidays.Calendar
	audit    *audit.Dispatcher

	now func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	calendar *holidays.Calendar,
	auditd *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		calendar: calendar,
		audit:    auditd,
		now:      timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute runs the full booking-eligibility chain. The first failing rule
// wins; nothing is written before the final insert.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// 1. Required fields
	if in.StudioID == 0 || in.TimeSlotID == 0 || in.BookingDate == "" {
		return nil, httperr.ErrBusinessMsg(httperr.CodeInvalidInput, "missing required fields")
	}

	if !domain.IsValidDate(in.BookingDate) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}
	date, _ := time.Parse("2006-01-02", in.BookingDate)

	// 2. No weekend or holiday bookings
	if domain.IsWeekend(date) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeWeekendBooking, "studios are closed on weekends")
	}
	if uc.calendar.IsHoliday(in.BookingDate) {
		return nil, httperr.ErrBusinessMsg(httperr.CodeHolidayBooking, "studios are closed on holidays")
	}

	// 3. Studio must exist
	studio, err := uc.repo.GetStudioByID(ctx, in.StudioID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeStudioNotFound)
	}

	// 4. Category access window
	user, err := uc.repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeUserNotFound)
	}
	if err := access.CheckStudioAccess(user, studio, uc.now()); err != nil {
		return nil, err
	}

	// 5. Per-user quota
	count, err := uc.repo.CountConfirmedForUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if count >= maxActiveBookings {
		return nil, httperr.ErrBusinessMsg(httperr.CodeQuotaExceeded, "maximum of 2 active bookings")
	}

	// 6. Slot must exist and be free
	if _, err := uc.repo.GetTimeSlot(ctx, in.TimeSlotID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeSlotNotFound)
	}
	taken, err := uc.repo.SlotHasActiveBooking(ctx, in.TimeSlotID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	// 7. No second booking in the same studio. Applies only when the user
	// already holds exactly one booking; any slot in the studio counts,
	// adjacent or not.
	if count == 1 {
		inStudio, err := uc.repo.CountConfirmedInStudio(ctx, in.UserID, in.StudioID)
		if err != nil {
			return nil, err
		}
		if inStudio > 0 {
			return nil, httperr.ErrBusinessMsg(
				httperr.CodeConsecutiveSlot,
				"no consecutive slots in the same studio",
			)
		}
	}

	// 8. Conditional insert. The active-slot unique index resolves any race
	// that slipped past step 6; the repository surfaces it as slot_just_taken.
	b := &models.Booking{
		UserID:      &in.UserID,
		StudioID:    in.StudioID,
		TimeSlotID:  in.TimeSlotID,
		BookingDate: date,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
