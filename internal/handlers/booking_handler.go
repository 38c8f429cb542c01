package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/httpresp"
	"github.com/reservaestudios/studio-booking-api/internal/metrics"
	"github.com/reservaestudios/studio-booking-api/internal/middleware"
	ucBooking "github.com/reservaestudios/studio-booking-api/internal/usecase/booking"
)

type BookingHandler struct {
	repo    domain.Repository
	create  *ucBooking.CreateBooking
	cancel  *ucBooking.CancelBooking
	metrics *metrics.Metrics
}

func NewBookingHandler(
	repo domain.Repository,
	create *ucBooking.CreateBooking,
	cancel *ucBooking.CancelBooking,
	m *metrics.Metrics,
) *BookingHandler {
	return &BookingHandler{
		repo:    repo,
		create:  create,
		cancel:  cancel,
		metrics: m,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	StudioID    uint   `json:"studioId"`
	TimeSlotID  uint   `json:"timeSlotId"`
	BookingDate string `json:"bookingDate"`
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, err.Error())
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:      middleware.GetUserID(c),
		StudioID:    req.StudioID,
		TimeSlotID:  req.TimeSlotID,
		BookingDate: req.BookingDate,
	})
	if err != nil {
		switch code := businessCode(err); code {
		case httperr.CodeSlotTaken, httperr.CodeSlotJustTaken, httperr.CodeConsecutiveSlot:
			h.metrics.BookingConflictsTotal.WithLabelValues(code).Inc()
		}
		writeError(c, err)
		return
	}

	h.metrics.BookingsCreatedTotal.WithLabelValues("user").Inc()
	httpresp.Created(c, b)
}

func (h *BookingHandler) MyBookings(c *gin.Context) {
	rows, err := h.repo.ListBookingsForUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "invalid booking id")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), uint(bookingID), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	h.metrics.BookingsCancelledTotal.Inc()
	c.JSON(http.StatusOK, gin.H{
		"id":           b.ID,
		"status":       b.Status,
		"cancelled_at": b.CancelledAt,
	})
}
