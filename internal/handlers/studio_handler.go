package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reservaestudios/studio-booking-api/internal/httperr"
	"github.com/reservaestudios/studio-booking-api/internal/httpresp"
	"github.com/reservaestudios/studio-booking-api/internal/models"
	ucBooking "github.com/reservaestudios/studio-booking-api/internal/usecase/booking"
)

type StudioHandler struct {
	db       *gorm.DB
	getSlots *ucBooking.GetSlots
}

func NewStudioHandler(db *gorm.DB, getSlots *ucBooking.GetSlots) *StudioHandler {
	return &StudioHandler{db: db, getSlots: getSlots}
}

func (h *StudioHandler) List(c *gin.Context) {
	var studios []models.Studio
	if err := h.db.Order("id").Find(&studios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_studios"})
		return
	}

	httpresp.List(c, studios)
}

func (h *StudioHandler) Slots(c *gin.Context) {
	studioID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "invalid studio id")
		return
	}

	slots, err := h.getSlots.Execute(c.Request.Context(), uint(studioID), c.Param("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}
