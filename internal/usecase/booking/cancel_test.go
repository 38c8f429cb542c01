package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservaestudios/studio-booking-api/internal/audit"
	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
)

func newCancelUC(repo *stubRepo, sink *stubSink) *CancelBooking {
	uc := NewCancelBooking(repo, audit.NewDispatcher(sink))
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestCancelBookingSuccess(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	user := repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))
	slot := repo.addSlot(1, 1, tuesday)
	b := repo.addBooking(&user.ID, slot, string(domain.StatusConfirmed))

	sink := &stubSink{}
	uc := newCancelUC(repo, sink)

	out, err := uc.Execute(context.Background(), b.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), out.Status)
	require.NotNil(t, out.CancelledAt)
	assert.Equal(t, testNow, *out.CancelledAt)

	// The slot is free again for other users.
	taken, err := repo.SlotHasActiveBooking(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	assert.Eventually(t, func() bool {
		return sink.has("booking_cancelled")
	}, time.Second, 10*time.Millisecond)
}

func TestCancelBookingWrongUser(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	owner := repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))
	repo.addUser(20, "PME", testNow.AddDate(0, -6, 0))
	slot := repo.addSlot(1, 1, tuesday)
	b := repo.addBooking(&owner.ID, slot, string(domain.StatusConfirmed))

	uc := newCancelUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), b.ID, 20)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))

	// Still confirmed.
	taken, _ := repo.SlotHasActiveBooking(context.Background(), slot.ID)
	assert.True(t, taken)
}

func TestCancelBookingTwice(t *testing.T) {
	repo := newStubRepo()
	repo.addStudio(1, "Studio A", "PME")
	user := repo.addUser(10, "PME", testNow.AddDate(0, -6, 0))
	slot := repo.addSlot(1, 1, tuesday)
	b := repo.addBooking(&user.ID, slot, string(domain.StatusConfirmed))

	uc := newCancelUC(repo, &stubSink{})

	_, err := uc.Execute(context.Background(), b.ID, user.ID)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), b.ID, user.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))
}

func TestCancelBookingUnknownID(t *testing.T) {
	uc := newCancelUC(newStubRepo(), &stubSink{})

	_, err := uc.Execute(context.Background(), 404, 10)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBookingNotFound))
}
