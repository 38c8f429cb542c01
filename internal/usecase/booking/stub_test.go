package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/dto"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/models"
)

var errNotFound = errors.New("record not found")

// stubRepo is an in-memory Repository for use case tests. It reproduces the
// active-slot uniqueness the database index enforces.
type stubRepo struct {
	mu sync.Mutex

	studios  map[uint]*models.Studio
	users    map[uint]*models.User
	slots    map[uint]*models.TimeSlot
	bookings map[uint]*models.Booking

	nextSlotID    uint
	nextBookingID uint
	ensureCalls   int
}

var _ domain.Repository = (*stubRepo)(nil)

func newStubRepo() *stubRepo {
	return &stubRepo{
		studios:  make(map[uint]*models.Studio),
		users:    make(map[uint]*models.User),
		slots:    make(map[uint]*models.TimeSlot),
		bookings: make(map[uint]*models.Booking),
	}
}

// ---- fixture helpers ----

func (r *stubRepo) addStudio(id uint, name, categories string) *models.Studio {
	s := &models.Studio{ID: id, Name: name, Categories: categories}
	r.studios[id] = s
	return s
}

func (r *stubRepo) addUser(id uint, category string, createdAt time.Time) *models.User {
	u := &models.User{
		ID:        id,
		Name:      "Test User",
		Initials:  "TU",
		Category:  category,
		Role:      "user",
		Active:    true,
		CreatedAt: createdAt,
	}
	r.users[id] = u
	return u
}

func (r *stubRepo) addSlot(studioID uint, number int, date time.Time) *models.TimeSlot {
	r.nextSlotID++
	def := domain.CanonicalSlots()[number-1]
	s := &models.TimeSlot{
		ID:         r.nextSlotID,
		StudioID:   studioID,
		SlotNumber: number,
		StartTime:  def.Start,
		EndTime:    def.End,
		SlotDate:   date,
	}
	r.slots[s.ID] = s
	return s
}

func (r *stubRepo) addBooking(userID *uint, slot *models.TimeSlot, status string) *models.Booking {
	r.nextBookingID++
	b := &models.Booking{
		ID:          r.nextBookingID,
		UserID:      userID,
		StudioID:    slot.StudioID,
		TimeSlotID:  slot.ID,
		BookingDate: slot.SlotDate,
		Status:      status,
	}
	r.bookings[b.ID] = b
	return b
}

func active(status string) bool {
	return status == string(domain.StatusConfirmed) || status == string(domain.StatusBlocked)
}

// ---- Repository ----

func (r *stubRepo) GetStudioByID(_ context.Context, id uint) (*models.Studio, error) {
	if s, ok := r.studios[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *stubRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func (r *stubRepo) GetTimeSlot(_ context.Context, id uint) (*models.TimeSlot, error) {
	if s, ok := r.slots[id]; ok {
		return s, nil
	}
	return nil, errNotFound
}

func (r *stubRepo) EnsureSlots(_ context.Context, studioID uint, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureCalls++

	for _, def := range domain.CanonicalSlots() {
		exists := false
		for _, s := range r.slots {
			if s.StudioID == studioID && s.SlotNumber == def.Number && s.SlotDate.Equal(date) {
				exists = true
				break
			}
		}
		if !exists {
			r.addSlot(studioID, def.Number, date)
		}
	}
	return nil
}

func (r *stubRepo) ListSlotViews(_ context.Context, studioID uint, date time.Time) ([]domain.SlotView, error) {
	views := make([]domain.SlotView, 0, 4)
	for _, def := range domain.CanonicalSlots() {
		for _, s := range r.slots {
			if s.StudioID != studioID || s.SlotNumber != def.Number || !s.SlotDate.Equal(date) {
				continue
			}
			v := domain.SlotView{
				ID:         s.ID,
				SlotNumber: s.SlotNumber,
				StartTime:  s.StartTime,
				EndTime:    s.EndTime,
				StudioID:   s.StudioID,
				Status:     domain.SlotAvailable,
			}
			for _, b := range r.bookings {
				if b.TimeSlotID != s.ID || !active(b.Status) {
					continue
				}
				if b.Status == string(domain.StatusBlocked) {
					v.Status = domain.SlotBlocked
				} else {
					v.Status = domain.SlotBooked
					if b.UserID != nil {
						if u, ok := r.users[*b.UserID]; ok {
							v.Initials = u.Initials
						}
					}
				}
			}
			views = append(views, v)
		}
	}
	return views, nil
}

func (r *stubRepo) CountConfirmedForUser(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.UserID != nil && *b.UserID == userID && b.Status == string(domain.StatusConfirmed) {
			n++
		}
	}
	return n, nil
}

func (r *stubRepo) CountConfirmedInStudio(_ context.Context, userID, studioID uint) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.UserID != nil && *b.UserID == userID && b.StudioID == studioID &&
			b.Status == string(domain.StatusConfirmed) {
			n++
		}
	}
	return n, nil
}

func (r *stubRepo) SlotHasActiveBooking(_ context.Context, timeSlotID uint) (bool, error) {
	for _, b := range r.bookings {
		if b.TimeSlotID == timeSlotID && active(b.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if active(b.Status) {
		for _, other := range r.bookings {
			if other.TimeSlotID == b.TimeSlotID && active(other.Status) {
				return httperr.ErrBusinessMsg(
					httperr.CodeSlotJustTaken,
					"sorry, this slot was taken a second ago",
				)
			}
		}
	}

	r.nextBookingID++
	b.ID = r.nextBookingID
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *stubRepo) GetConfirmedBookingForUser(_ context.Context, bookingID, userID uint) (*models.Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok || b.UserID == nil || *b.UserID != userID || b.Status != string(domain.StatusConfirmed) {
		return nil, errNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubRepo) GetConfirmedBooking(_ context.Context, bookingID uint) (*models.Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok || b.Status != string(domain.StatusConfirmed) {
		return nil, errNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return errNotFound
	}
	stored := *b
	r.bookings[b.ID] = &stored
	return nil
}

func (r *stubRepo) ListBookingsForUser(_ context.Context, userID uint) ([]dto.MyBookingDTO, error) {
	out := []dto.MyBookingDTO{}
	for _, b := range r.bookings {
		if b.UserID == nil || *b.UserID != userID || b.Status != string(domain.StatusConfirmed) {
			continue
		}
		slot := r.slots[b.TimeSlotID]
		out = append(out, dto.MyBookingDTO{
			ID:         b.ID,
			UserID:     userID,
			StudioID:   b.StudioID,
			StudioName: r.studios[b.StudioID].Name,
			SlotNumber: slot.SlotNumber,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			SlotDate:   slot.SlotDate,
			Status:     b.Status,
		})
	}
	return out, nil
}

func (r *stubRepo) ListConfirmedBookings(_ context.Context) ([]dto.AdminBookingDTO, error) {
	out := []dto.AdminBookingDTO{}
	for _, b := range r.bookings {
		if b.Status != string(domain.StatusConfirmed) {
			continue
		}
		slot := r.slots[b.TimeSlotID]
		row := dto.AdminBookingDTO{
			ID:         b.ID,
			UserID:     b.UserID,
			TimeSlotID: b.TimeSlotID,
			SlotDate:   slot.SlotDate,
			StartTime:  slot.StartTime,
			EndTime:    slot.EndTime,
			StudioID:   b.StudioID,
			StudioName: r.studios[b.StudioID].Name,
			Status:     b.Status,
		}
		if b.UserID != nil {
			if u, ok := r.users[*b.UserID]; ok {
				row.UserName = u.Name
				row.UserInitials = u.Initials
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *stubRepo) DeleteBlockedForSlot(_ context.Context, timeSlotID uint) (*models.Booking, error) {
	for id, b := range r.bookings {
		if b.TimeSlotID == timeSlotID && b.Status == string(domain.StatusBlocked) {
			cp := *b
			delete(r.bookings, id)
			return &cp, nil
		}
	}
	return nil, errNotFound
}

// ---- audit sink ----

type stubSink struct {
	mu      sync.Mutex
	actions []string
}

func (s *stubSink) Log(_ *uint, action, _ string, _ *uint, _ any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
	return nil
}

func (s *stubSink) has(action string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.actions {
		if a == action {
			return true
		}
	}
	return false
}
