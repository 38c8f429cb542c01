package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/reservaestudios/studio-booking-api/internal/domain/booking"
	"github.com/reservaestudios/studio-booking-api/internal/export"
	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/httpresp"
	"github.com/reservaestudios/studio-booking-api/internal/metrics"
	"github.com/reservaestudios/studio-booking-api/internal/middleware"
	"github.com/reservaestudios/studio-booking-api/internal/timezone"
	ucBooking "github.com/reservaestudios/studio-booking-api/internal/usecase/booking"
)

type AdminBookingsHandler struct {
	repo    domain.Repository
	create  *ucBooking.AdminCreateBooking
	cancel  *ucBooking.AdminCancelBooking
	block   *ucBooking.BlockSlot
	unblock *ucBooking.UnblockSlot
	metrics *metrics.Metrics
}

func NewAdminBookingsHandler(
	repo domain.Repository,
	create *ucBooking.AdminCreateBooking,
	cancel *ucBooking.AdminCancelBooking,
	block *ucBooking.BlockSlot,
	unblock *ucBooking.UnblockSlot,
	m *metrics.Metrics,
) *AdminBookingsHandler {
	return &AdminBookingsHandler{
		repo:    repo,
		create:  create,
		cancel:  cancel,
		block:   block,
		unblock: unblock,
		metrics: m,
	}
}

// --------- Requests ---------

type AdminCreateBookingRequest struct {
	UserID     uint `json:"userId"`
	TimeSlotID uint `json:"timeSlotId"`
}

type BlockSlotRequest struct {
	TimeSlotID uint `json:"timeSlotId"`
}

// --------- Handlers ---------

func (h *AdminBookingsHandler) List(c *gin.Context) {
	rows, err := h.repo.ListConfirmedBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *AdminBookingsHandler) Create(c *gin.Context) {
	var req AdminCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, err.Error())
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.AdminCreateBookingInput{
		AdminID:    middleware.GetUserID(c),
		UserID:     req.UserID,
		TimeSlotID: req.TimeSlotID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.metrics.BookingsCreatedTotal.WithLabelValues("admin").Inc()
	httpresp.Created(c, b)
}

func (h *AdminBookingsHandler) Cancel(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "invalid booking id")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), middleware.GetUserID(c), uint(bookingID))
	if err != nil {
		writeError(c, err)
		return
	}

	h.metrics.BookingsCancelledTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "booking cancelled", "booking": b})
}

func (h *AdminBookingsHandler) Export(c *gin.Context) {
	rows, err := h.repo.ListConfirmedBookings(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	f, err := export.BookingsWorkbook(rows)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("bookings-%s.xlsx", timezone.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		writeError(c, err)
	}
}

func (h *AdminBookingsHandler) BlockSlot(c *gin.Context) {
	var req BlockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, err.Error())
		return
	}

	b, err := h.block.Execute(c.Request.Context(), middleware.GetUserID(c), req.TimeSlotID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.metrics.BookingsCreatedTotal.WithLabelValues("block").Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "slot blocked", "booking": b})
}

func (h *AdminBookingsHandler) UnblockSlot(c *gin.Context) {
	slotID, err := strconv.ParseUint(c.Param("slotId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "invalid slot id")
		return
	}

	b, err := h.unblock.Execute(c.Request.Context(), middleware.GetUserID(c), uint(slotID))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "slot unblocked", "booking": b})
}
