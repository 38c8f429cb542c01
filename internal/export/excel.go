package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/reservaestudios/studio-booking-api/internal/dto"
)

var bookingColumns = []string{
	"ID", "User", "Initials", "Studio", "Date", "Start", "End", "Status", "Created",
}

// BookingsWorkbook renders the confirmed-bookings report as an xlsx file.
func BookingsWorkbook(rows []dto.AdminBookingDTO) (*excelize.File, error) {
	f := excelize.NewFile()

	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	for i, col := range bookingColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		values := []any{
			row.ID,
			row.UserName,
			row.UserInitials,
			row.StudioName,
			row.SlotDate.Format("2006-01-02"),
			row.StartTime,
			row.EndTime,
			row.Status,
			row.CreatedAt.Format("2006-01-02 15:04"),
		}
		for cIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+2, err)
			}
		}
	}

	return f, nil
}
