package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/dto"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/models"
)

const (
	pgUniqueViolation = "23505"
	activeSlotIndex   = "idx_bookings_active_slot"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Studio
// --------------------------------------------------

func (r *BookingGormRepository) GetStudioByID(
	ctx context.Context,
	id uint,
) (*models.Studio, error) {

	var studio models.Studio
	if err := r.db.WithContext(ctx).First(&studio, id).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *BookingGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Time slots
// --------------------------------------------------

func (r *BookingGormRepository) GetTimeSlot(
	ctx context.Context,
	id uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *BookingGormRepository) EnsureSlots(
	ctx context.Context,
	studioID uint,
	date time.Time,
) error {

	defs := domain.CanonicalSlots()
	slots := make([]models.TimeSlot, 0, len(defs))
	for _, d := range defs {
		slots = append(slots, models.TimeSlot{
			StudioID:   studioID,
			SlotNumber: d.Number,
			StartTime:  d.Start,
			EndTime:    d.End,
			SlotDate:   date,
		})
	}

	// Concurrent first readers of a fresh date race here; the unique
	// (studio, slot, date) index plus DO NOTHING keeps it idempotent.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&slots).Error
}

func (r *BookingGormRepository) ListSlotViews(
	ctx context.Context,
	studioID uint,
	date time.Time,
) ([]domain.SlotView, error) {

	views := []domain.SlotView{}
	err := r.db.WithContext(ctx).Raw(`
        SELECT
            ts.id,
            ts.slot_number,
            ts.start_time,
            ts.end_time,
            ts.studio_id,
            CASE
                WHEN b.status = 'blocked' THEN 'blocked'
                WHEN b.id IS NOT NULL THEN 'booked'
                ELSE 'available'
            END AS status,
            COALESCE(u.initials, '') AS initials
        FROM time_slots ts
        LEFT JOIN bookings b
            ON ts.id = b.time_slot_id AND b.status IN ('confirmed', 'blocked')
        LEFT JOIN users u ON b.user_id = u.id
        WHERE ts.studio_id = ? AND ts.slot_date = ?
        ORDER BY ts.slot_number
    `, studioID, date).Scan(&views).Error

	if err != nil {
		return nil, err
	}
	return views, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CountConfirmedForUser(
	ctx context.Context,
	userID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND status = 'confirmed'", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) CountConfirmedInStudio(
	ctx context.Context,
	userID uint,
	studioID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND studio_id = ? AND status = 'confirmed'", userID, studioID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) SlotHasActiveBooking(
	ctx context.Context,
	timeSlotID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("time_slot_id = ? AND status IN ('confirmed', 'blocked')", timeSlotID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		// The partial unique index on active slots is the authoritative
		// conflict signal; the pre-check only exists for friendly errors.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			pgErr.Code == pgUniqueViolation &&
			pgErr.ConstraintName == activeSlotIndex {
			return httperr.ErrBusinessMsg(
				httperr.CodeSlotJustTaken,
				"sorry, this slot was taken a second ago",
			)
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetConfirmedBookingForUser(
	ctx context.Context,
	bookingID uint,
	userID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = 'confirmed'", bookingID, userID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetConfirmedBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND status = 'confirmed'", bookingID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]dto.MyBookingDTO, error) {

	rows := []dto.MyBookingDTO{}
	err := r.db.WithContext(ctx).Raw(`
        SELECT
            b.id,
            b.user_id,
            b.studio_id,
            s.name AS studio_name,
            ts.slot_number,
            ts.start_time,
            ts.end_time,
            ts.slot_date,
            b.status,
            b.created_at
        FROM bookings b
        JOIN studios s ON b.studio_id = s.id
        JOIN time_slots ts ON b.time_slot_id = ts.id
        WHERE b.user_id = ? AND b.status = 'confirmed'
        ORDER BY ts.slot_date DESC, ts.slot_number
    `, userID).Scan(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) ListConfirmedBookings(
	ctx context.Context,
) ([]dto.AdminBookingDTO, error) {

	rows := []dto.AdminBookingDTO{}
	err := r.db.WithContext(ctx).Raw(`
        SELECT
            b.id,
            b.user_id,
            u.name AS user_name,
            u.initials AS user_initials,
            b.time_slot_id,
            ts.slot_date,
            ts.start_time,
            ts.end_time,
            ts.studio_id,
            s.name AS studio_name,
            b.status,
            b.created_at
        FROM bookings b
        JOIN users u ON b.user_id = u.id
        JOIN time_slots ts ON b.time_slot_id = ts.id
        JOIN studios s ON ts.studio_id = s.id
        WHERE b.status = 'confirmed'
        ORDER BY ts.slot_date DESC, ts.start_time DESC
    `).Scan(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Blocked slots
// --------------------------------------------------

func (r *BookingGormRepository) DeleteBlockedForSlot(
	ctx context.Context,
	timeSlotID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("time_slot_id = ? AND status = 'blocked'", timeSlotID).
		First(&b).Error; err != nil {
		return nil, err
	}

	// Blocked rows are the only bookings that are hard-deleted.
	if err := r.db.WithContext(ctx).Delete(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
