package httperr

import (
	"errors"
	"net/http"
)

// Business error codes shared by use cases and handlers.
const (
	CodeInvalidInput    = "invalid_input"
	CodeInvalidDate     = "invalid_date_format"
	CodeWeekendBooking  = "no_weekend_bookings"
	CodeHolidayBooking  = "no_holiday_bookings"
	CodeStudioNotFound  = "studio_not_found"
	CodeSlotNotFound    = "slot_not_found"
	CodeBookingNotFound = "booking_not_found"
	CodeUserNotFound    = "user_not_found"
	CodeAccessDenied    = "category_access_denied"
	CodeQuotaExceeded   = "booking_limit_reached"
	CodeSlotTaken       = "slot_already_booked"
	CodeConsecutiveSlot = "no_consecutive_slots_in_studio"
	CodeSlotJustTaken   = "slot_just_taken"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

var statusByCode = map[string]int{
	CodeInvalidInput:    http.StatusBadRequest,
	CodeInvalidDate:     http.StatusBadRequest,
	CodeWeekendBooking:  http.StatusBadRequest,
	CodeHolidayBooking:  http.StatusBadRequest,
	CodeQuotaExceeded:   http.StatusBadRequest,
	CodeStudioNotFound:  http.StatusNotFound,
	CodeSlotNotFound:    http.StatusNotFound,
	CodeBookingNotFound: http.StatusNotFound,
	CodeUserNotFound:    http.StatusNotFound,
	CodeAccessDenied:    http.StatusForbidden,
	CodeSlotTaken:       http.StatusConflict,
	CodeConsecutiveSlot: http.StatusConflict,
	CodeSlotJustTaken:   http.StatusConflict,
}

// StatusFor maps a business code to its HTTP status. Unknown codes are
// treated as internal failures.
func StatusFor(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
