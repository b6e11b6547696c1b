package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	resdto "appointment-server/internal/handler/dto/response"
	"appointment-server/internal/handler/httperr"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityQueries: availabilityQueries}
}

// @Summary Get available slots
// @Description Get the provider's slot grid for a date with booked slots marked unavailable
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param durationMinutes query int false "Requested appointment duration in minutes; defaults to the slot duration"
// @Success 200 {object} resdto.DayAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/available-slots/{providerId} [get]
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid provider ID format")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid 'date' parameter, expected YYYY-MM-DD")
		return
	}

	durationMinutes := 0
	if raw := c.Query("durationMinutes"); raw != "" {
		durationMinutes, err = strconv.Atoi(raw)
		if err != nil || durationMinutes <= 0 {
			httperr.BadRequest(c, err, "Invalid 'durationMinutes' parameter, expected a positive integer")
			return
		}
	}

	view, err := h.availabilityQueries.GetDaySlots(c.Request.Context(), providerID, date, durationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrProviderNotFound):
			httperr.Abort(c, http.StatusNotFound, err, "Provider not found")
		default:
			httperr.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromDayAvailabilityView(view))
}
