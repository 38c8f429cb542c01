package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservaestudios/studio-booking-api/internal/audit"
	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/holidays"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
)

// Monday, so rotation and weekend checks are deterministic.
var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

var tuesday = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

const tuesdayStr = "2026-09-01"

func newCreateUC(repo *stubRepo, sink *stubSink) *CreateBooking {
	uc := NewCreateBooking(repo, holidays.New(""), audit.NewDispatcher(sink))
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))
	slot := repo.addSlot(1, 2, tuesday)

	sink := &stubSink{}
	uc := newCreateUC(repo, sink)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID:     10,
		StudioID:   1,
		TimeSlotID: slot.ID,
		BookingDate: tuesdayStr,
	})
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.NotZero(t, b.ID)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	require.NotNil(t, b.UserID)
	assert.Equal(t, uint(10), *b.UserID)
	assert.Equal(t, uint(1), b.StudioID)
	assert.True(t, b.BookingDate.Equal(tuesday))

	assert.Eventually(t, func() bool {
		return sink.has("booking_created")
	}, time.Second, 10*time.Millisecond)
}

func TestCreateBookingMissingFields(t *testing.T) {
	uc := newCreateUC(newStubRepo(), &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{UserID: 10})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInput))
}

func TestCreateBookingInvalidDate(t *testing.T) {
	repo := newStubRepo()
	uc := newCreateUC(repo, &stubSink{})

	for _, bad := range []string{"2026-9-1", "01-09-2026", "2026-02-30"} {
		_, err := uc.Execute(context.Background(), CreateBookingInput{
			UserID: 10, StudioID: 1, TimeSlotID: 1, BookingDate: bad,
		})
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDate), bad)
	}
}

func TestCreateBookingWeekend(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	uc := newCreateUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: 1, BookingDate: "2026-09-05",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeWeekendBooking))
}

func TestCreateBookingHoliday(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	uc := newCreateUC(repo, &stubSink{})

	// Christmas falls on a Friday, so only the holiday rule rejects it.
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: 1, BookingDate: "2026-12-25",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeHolidayBooking))
}

func TestCreateBookingExtraHoliday(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))

	uc := NewCreateBooking(repo, holidays.New(tuesdayStr), audit.NewDispatcher(&stubSink{}))
	uc.now = func() time.Time { return testNow }

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: 1, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeHolidayBooking))
}

func TestCreateBookingStudioNotFound(t *testing.T) {
	uc := newCreateUC(newStubRepo(), &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 99, TimeSlotID: 1, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeStudioNotFound))
}

func TestCreateBookingCategoryDenied(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "ING Studio", "ING")
	repo.addStudio(2, "PME Studio", "PME")
	slot1 := repo.addSlot(1, 1, tuesday)
	slot2 := repo.addSlot(2, 1, tuesday)

	// Combined-track junior: 18 months in, currently PME only.
	repo.addUser(10, "PME+ING", testNow.AddDate(0, -18, 0))
	// Combined-track senior: 30 months in, currently ING only.
	repo.addUser(20, "PME+ING", testNow.AddDate(0, -30, 0))

	uc := newCreateUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: slot1.ID, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAccessDenied))

	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID: 20, StudioID: 2, TimeSlotID: slot2.ID, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAccessDenied))

	// The senior may book the ING studio.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID: 20, StudioID: 1, TimeSlotID: slot1.ID, BookingDate: tuesdayStr,
	})
	assert.NoError(t, err)
}

func TestCreateBookingQuota(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addStudio(2, "Studio B", "PME")
	repo.addStudio(3, "Studio C", "PME")
	user := repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))

	s1 := repo.addSlot(1, 1, tuesday)
	s2 := repo.addSlot(2, 1, tuesday)
	s3 := repo.addSlot(3, 1, tuesday)
	repo.addBooking(&user.ID, s1, string(domain.StatusConfirmed))
	repo.addBooking(&user.ID, s2, string(domain.StatusConfirmed))

	uc := newCreateUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 3, TimeSlotID: s3.ID, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeQuotaExceeded))
}

func TestCreateBookingQuotaIgnoresCancelled(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addStudio(2, "Studio B", "PME")
	user := repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))

	s1 := repo.addSlot(1, 1, tuesday)
	s2 := repo.addSlot(1, 2, tuesday)
	s3 := repo.addSlot(2, 1, tuesday)
	repo.addBooking(&user.ID, s1, string(domain.StatusCancelled))
	repo.addBooking(&user.ID, s2, string(domain.StatusCancelled))

	uc := newCreateUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 2, TimeSlotID: s3.ID, BookingDate: tuesdayStr,
	})
	assert.NoError(t, err)
}

func TestCreateBookingSlotNotFound(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))

	uc := newCreateUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: 99, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotNotFound))
}

func TestCreateBookingSlotTaken(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))
	other := repo.addUser(20, "PME", testNow.AddDate(0, -6, 0))

	slot := repo.addSlot(1, 1, tuesday)
	repo.addBooking(&other.ID, slot, string(domain.StatusConfirmed))

	uc := newCreateUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: slot.ID, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestCreateBookingBlockedSlot(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))

	slot := repo.addSlot(1, 1, tuesday)
	repo.addBooking(nil, slot, string(domain.StatusBlocked))

	uc := newCreateUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: slot.ID, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestCreateBookingSameStudioRule(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addStudio(2, "Studio B", "PME")
	user := repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))

	s1 := repo.addSlot(1, 1, tuesday)
	s2 := repo.addSlot(1, 2, tuesday)
	s3 := repo.addSlot(2, 1, tuesday)
	repo.addBooking(&user.ID, s1, string(domain.StatusConfirmed))

	uc := newCreateUC(repo, &stubSink{})

	// Second booking in the same studio is rejected.
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: s2.ID, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeConsecutiveSlot))

	// A different studio is fine.
	_, err = uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 2, TimeSlotID: s3.ID, BookingDate: tuesdayStr,
	})
	assert.NoError(t, err)
}

// racingRepo hides an existing active booking from the pre-check so the
// insert itself has to resolve the conflict.
type racingRepo struct {
	*stubRepo
}

func (r *racingRepo) SlotHasActiveBooking(context.Context, uint) (bool, error) {
	return false, nil
}

func TestCreateBookingLostRace(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))
	other := repo.addUser(20, "PME", testNow.AddDate(0, -6, 0))

	slot := repo.addSlot(1, 1, tuesday)
	repo.addBooking(&other.ID, slot, string(domain.StatusConfirmed))

	uc := NewCreateBooking(&racingRepo{repo}, holidays.New(""), audit.NewDispatcher(&stubSink{}))
	uc.now = func() time.Time { return testNow }

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		UserID: 10, StudioID: 1, TimeSlotID: slot.ID, BookingDate: tuesdayStr,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotJustTaken))
}
