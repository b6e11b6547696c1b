package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "appointment-server/internal/handler/dto/request"
	resdto "appointment-server/internal/handler/dto/response"
	"appointment-server/internal/handler/httperr"
	"appointment-server/internal/handler/middleware"
	"appointment-server/internal/pkg/errs"
	"appointment-server/internal/usecase/commands"
	"appointment-server/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	bookingCommands    commands.BookingCommands
	appointmentQueries queries.AppointmentQueries
}

func NewAppointmentHandler(bookingCommands commands.BookingCommands, appointmentQueries queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{
		bookingCommands:    bookingCommands,
		appointmentQueries: appointmentQueries,
	}
}

// @Summary Create appointment
// @Description Book the selected services with a provider at a slot-aligned start time
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAppointmentRequest true "Appointment request"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Internal(c, nil)
		return
	}

	var req reqdto.CreateAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format")
		return
	}

	appt, err := h.bookingCommands.Create(c.Request.Context(), req.ToInput(actor.ID))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAppointmentView(queries.NewAppointmentView(appt)))
}

// @Summary Update appointment
// @Description Reschedule, change services or notes, or move the appointment through its lifecycle
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentRequest true "Update request"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments/{id} [patch]
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Internal(c, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid appointment ID format")
		return
	}

	var req reqdto.UpdateAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format")
		return
	}

	in, valid := req.ToInput()
	if !valid {
		httperr.BadRequest(c, nil, "Unknown appointment status")
		return
	}

	appt, err := h.bookingCommands.Update(c.Request.Context(), actor, id, in)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(queries.NewAppointmentView(appt)))
}

// @Summary Cancel appointment
// @Description Cancel the appointment; cancelling twice fails
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Internal(c, nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid appointment ID format")
		return
	}

	appt, err := h.bookingCommands.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(queries.NewAppointmentView(appt)))
}

// @Summary Get appointment
// @Description Get appointment by ID
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid appointment ID format")
		return
	}

	view, err := h.appointmentQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrAppointmentNotFound):
			httperr.Abort(c, http.StatusNotFound, err, "Appointment not found")
		default:
			httperr.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(*view))
}

// @Summary List client appointments
// @Description List all appointments booked by a client
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /appointments/client/{id} [get]
func (h *AppointmentHandler) ListClientAppointments(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid client ID format")
		return
	}

	views, err := h.appointmentQueries.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentViews(views))
}

// @Summary List provider appointments
// @Description List all appointments on a provider's calendar
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Provider ID"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /appointments/provider/{id} [get]
func (h *AppointmentHandler) ListProviderAppointments(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid provider ID format")
		return
	}

	views, err := h.appointmentQueries.ListByProvider(c.Request.Context(), providerID)
	if err != nil {
		httperr.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentViews(views))
}

// @Summary List appointments in a date range
// @Description List a provider's appointments whose start time falls inside [from, to)
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Provider ID"
// @Param from query string true "Range start (RFC 3339)"
// @Param to query string true "Range end (RFC 3339)"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /appointments/provider/{id}/date-range [get]
func (h *AppointmentHandler) ListAppointmentsByDateRange(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid provider ID format")
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid 'from' parameter, expected RFC 3339 timestamp")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid 'to' parameter, expected RFC 3339 timestamp")
		return
	}

	views, err := h.appointmentQueries.ListByDateRange(c.Request.Context(), providerID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrValidation):
			httperr.BadRequest(c, err, "Range end precedes range start")
		default:
			httperr.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentViews(views))
}

func (h *AppointmentHandler) writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrProviderNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Provider not found")
	case errors.Is(err, errs.ErrServiceNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Service not found")
	case errors.Is(err, errs.ErrAppointmentNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Appointment not found")
	case errors.Is(err, errs.ErrValidation):
		httperr.BadRequest(c, err, "Validation failed")
	case errors.Is(err, errs.ErrSchedulingWindow):
		httperr.Abort(c, http.StatusUnprocessableEntity, err, "Requested time is not bookable")
	case errors.Is(err, errs.ErrBookingConflict):
		httperr.Abort(c, http.StatusConflict, err, "Time slot is no longer available")
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.Abort(c, http.StatusConflict, err, "Invalid status transition")
	case errors.Is(err, errs.ErrPermissionDenied):
		httperr.Abort(c, http.StatusForbidden, err, "Insufficient permissions")
	default:
		httperr.Internal(c, err)
	}
}
