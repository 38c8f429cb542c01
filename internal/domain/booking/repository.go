package booking

import (
	"context"
	"time"

	"github.com/reservaestudios/studio-booking-api/internal/dto"
	"github.com/reservaestudios/studio-booking-api/internal/models"
)

type Repository interface {
	// -------- Studio --------
	GetStudioByID(
		ctx context.Context,
		id uint,
	) (*models.Studio, error)

	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Time slots --------
	GetTimeSlot(
		ctx context.Context,
		id uint,
	) (*models.TimeSlot, error)

	// EnsureSlots materializes the four canonical slots for the studio and
	// date. Must be a no-op when they already exist, including under
	// concurrent callers.
	EnsureSlots(
		ctx context.Context,
		studioID uint,
		date time.Time,
	) error

	ListSlotViews(
		ctx context.Context,
		studioID uint,
		date time.Time,
	) ([]SlotView, error)

	// -------- Booking (create / conflict) --------
	CountConfirmedForUser(
		ctx context.Context,
		userID uint,
	) (int64, error)

	CountConfirmedInStudio(
		ctx context.Context,
		userID uint,
		studioID uint,
	) (int64, error)

	SlotHasActiveBooking(
		ctx context.Context,
		timeSlotID uint,
	) (bool, error)

	// CreateBooking inserts the row. A unique violation on the active-slot
	// index surfaces as the slot-just-taken business error.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetConfirmedBookingForUser(
		ctx context.Context,
		bookingID uint,
		userID uint,
	) (*models.Booking, error)

	GetConfirmedBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listings --------
	ListBookingsForUser(
		ctx context.Context,
		userID uint,
	) ([]dto.MyBookingDTO, error)

	ListConfirmedBookings(
		ctx context.Context,
	) ([]dto.AdminBookingDTO, error)

	// -------- Blocked slots --------
	DeleteBlockedForSlot(
		ctx context.Context,
		timeSlotID uint,
	) (*models.Booking, error)
}
