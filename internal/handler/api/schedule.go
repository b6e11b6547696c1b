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
	"appointment-server/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
	scheduleQueries  queries.ScheduleQueries
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands, scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleCommands: scheduleCommands,
		scheduleQueries:  scheduleQueries,
	}
}

// @Summary Get weekly schedule
// @Description Get the provider's weekly working hours
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Success 200 {object} resdto.WeeklyScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /work-schedules/{providerId} [get]
func (h *ScheduleHandler) GetWeeklySchedule(c *gin.Context) {
	providerID, ok := h.providerID(c)
	if !ok {
		return
	}

	view, err := h.scheduleQueries.GetWeeklySchedule(c.Request.Context(), providerID)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromWeeklyScheduleView(view))
}

// @Summary Set weekly schedule
// @Description Replace the provider's working hours for the submitted weekdays
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param request body reqdto.SetWorkScheduleRequest true "Schedule entries"
// @Success 200 {object} resdto.WeeklyScheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /work-schedules/{providerId} [put]
func (h *ScheduleHandler) SetWeeklySchedule(c *gin.Context) {
	actor, providerID, ok := h.actorAndProvider(c)
	if !ok {
		return
	}

	var req reqdto.SetWorkScheduleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format")
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httperr.BadRequest(c, err, err.Error())
		return
	}

	entries, err := h.scheduleCommands.SetWorkSchedule(c.Request.Context(), actor, providerID, in)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromWorkSchedules(providerID, entries))
}

// @Summary List schedule exceptions
// @Description List the provider's date exceptions inside [from, to]
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} resdto.ScheduleExceptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /work-schedules/{providerId}/exceptions [get]
func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	providerID, ok := h.providerID(c)
	if !ok {
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid 'from' parameter, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid 'to' parameter, expected YYYY-MM-DD")
		return
	}

	views, err := h.scheduleQueries.ListExceptions(c.Request.Context(), providerID, from, to)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleExceptionViews(views))
}

// @Summary Put schedule exception
// @Description Create or replace the provider's exception for a date
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param request body reqdto.PutExceptionRequest true "Exception"
// @Success 200 {object} resdto.ScheduleExceptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /work-schedules/{providerId}/exceptions [put]
func (h *ScheduleHandler) PutException(c *gin.Context) {
	actor, providerID, ok := h.actorAndProvider(c)
	if !ok {
		return
	}

	var req reqdto.PutExceptionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format")
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httperr.BadRequest(c, err, err.Error())
		return
	}

	exc, err := h.scheduleCommands.PutException(c.Request.Context(), actor, providerID, in)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleException(exc))
}

// @Summary Delete schedule exception
// @Description Delete one of the provider's date exceptions
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param id path string true "Exception ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /work-schedules/{providerId}/exceptions/{id} [delete]
func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	actor, providerID, ok := h.actorAndProvider(c)
	if !ok {
		return
	}

	exceptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid exception ID format")
		return
	}

	if err := h.scheduleCommands.DeleteException(c.Request.Context(), actor, providerID, exceptionID); err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get slot config
// @Description Get the provider's slot configuration, falling back to the global default
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Success 200 {object} resdto.SlotConfigResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /time-slots/config/{providerId} [get]
func (h *ScheduleHandler) GetSlotConfig(c *gin.Context) {
	providerID, ok := h.providerID(c)
	if !ok {
		return
	}

	view, err := h.scheduleQueries.GetSlotConfig(c.Request.Context(), providerID)
	if err != nil {
		h.writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotConfigView(view))
}

// @Summary Update slot config
// @Description Replace the provider's slot configuration
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param providerId path string true "Provider ID"
// @Param request body reqdto.SlotConfigRequest true "Slot configuration"
// @Success 200 {object} resdto.SlotConfigResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /time-slots/config/{providerId} [put]
func (h *ScheduleHandler) UpdateSlotConfig(c *gin.Context) {
	actor, providerID, ok := h.actorAndProvider(c)
	if !ok {
		return
	}

	var req reqdto.SlotConfigRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.BadRequest(c, bindErr, "Invalid request format")
		return
	}

	cfg := req.ToConfig()
	if err := h.scheduleCommands.UpdateSlotConfig(c.Request.Context(), actor, providerID, cfg); err != nil {
		h.writeScheduleError(c, err)
		return
	}

	view := queries.NewSlotConfigView(cfg)
	c.JSON(http.StatusOK, resdto.FromSlotConfigView(&view))
}

func (h *ScheduleHandler) writeScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrProviderNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Provider not found")
	case errors.Is(err, errs.ErrExceptionNotFound):
		httperr.Abort(c, http.StatusNotFound, err, "Schedule exception not found")
	case errors.Is(err, errs.ErrValidation):
		httperr.BadRequest(c, err, "Validation failed")
	case errors.Is(err, errs.ErrPermissionDenied):
		httperr.Abort(c, http.StatusForbidden, err, "Insufficient permissions")
	default:
		httperr.Internal(c, err)
	}
}

func (h *ScheduleHandler) providerID(c *gin.Context) (uuid.UUID, bool) {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid provider ID format")
		return uuid.Nil, false
	}
	return providerID, true
}

func (h *ScheduleHandler) actorAndProvider(c *gin.Context) (shared.Actor, uuid.UUID, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.Internal(c, nil)
		return shared.Actor{}, uuid.Nil, false
	}

	providerID, ok := h.providerID(c)
	if !ok {
		return shared.Actor{}, uuid.Nil, false
	}
	return actor, providerID, true
}
