package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"appointment-server/internal/handler/api"
	"appointment-server/internal/handler/middleware"
	"appointment-server/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	appointmentHandler *api.AppointmentHandler,
	availabilityHandler *api.AvailabilityHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, appointmentHandler, availabilityHandler, scheduleHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	appointmentHandler *api.AppointmentHandler,
	availabilityHandler *api.AvailabilityHandler,
	scheduleHandler *api.ScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		appointments := apiGroup.Group("/appointments")
		appointments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: appointmentHandler.CreateAppointment},
				{Method: http.MethodGet, Path: "/available-slots/:providerId", Handler: availabilityHandler.GetAvailableSlots},
				{Method: http.MethodGet, Path: "/client/:id", Handler: appointmentHandler.ListClientAppointments},
				{Method: http.MethodGet, Path: "/provider/:id", Handler: appointmentHandler.ListProviderAppointments},
				{Method: http.MethodGet, Path: "/provider/:id/date-range", Handler: appointmentHandler.ListAppointmentsByDateRange},
				{Method: http.MethodGet, Path: "/:id", Handler: appointmentHandler.GetAppointment},
				{Method: http.MethodPatch, Path: "/:id", Handler: appointmentHandler.UpdateAppointment},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: appointmentHandler.CancelAppointment},
			})
		}

		schedules := apiGroup.Group("/work-schedules")
		schedules.Use(authMiddleware.RequireAuth())
		{
			addRoutes(schedules, []route{
				{Method: http.MethodGet, Path: "/:providerId", Handler: scheduleHandler.GetWeeklySchedule},
				{Method: http.MethodPut, Path: "/:providerId", Handler: scheduleHandler.SetWeeklySchedule},
				{Method: http.MethodGet, Path: "/:providerId/exceptions", Handler: scheduleHandler.ListExceptions},
				{Method: http.MethodPut, Path: "/:providerId/exceptions", Handler: scheduleHandler.PutException},
				{Method: http.MethodDelete, Path: "/:providerId/exceptions/:id", Handler: scheduleHandler.DeleteException},
			})
		}

		slotConfig := apiGroup.Group("/time-slots/config")
		slotConfig.Use(authMiddleware.RequireAuth())
		{
			addRoutes(slotConfig, []route{
				{Method: http.MethodGet, Path: "/:providerId", Handler: scheduleHandler.GetSlotConfig},
				{Method: http.MethodPut, Path: "/:providerId", Handler: scheduleHandler.UpdateSlotConfig},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
