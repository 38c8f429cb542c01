package booking

import (
	"context"
	"time"

	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/holidays"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
)

type GetSlots struct {
	repo     domain.Repository
	calendar *holidays.Calendar
}

func NewGetSlots(
	repo domain.Repository,
	calendar *holidays.Calendar,
) *GetSlots {
	return &GetSlots{
		repo:     repo,
		calendar: calendar,
	}
}

// Execute returns the studio's slots for the date, materializing the four
// canonical slots on first read of a weekday. Weekends and holidays yield an
// empty list and never create rows.
func (uc *GetSlots) Execute(
	ctx context.Context,
	studioID uint,
	dateStr string,
) ([]domain.SlotView, error) {

	if !domain.IsValidDate(dateStr) {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeInvalidDate,
			"invalid date format, use YYYY-MM-DD",
		)
	}

	if _, err := uc.repo.GetStudioByID(ctx, studioID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeStudioNotFound)
	}

	date, _ := time.Parse("2006-01-02", dateStr)

	if domain.IsWeekend(date) || uc.calendar.IsHoliday(dateStr) {
		return []domain.SlotView{}, nil
	}

	if err := uc.repo.EnsureSlots(ctx, studioID, date); err != nil {
		return nil, err
	}

	return uc.repo.ListSlotViews(ctx, studioID, date)
}
