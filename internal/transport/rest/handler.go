package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"barbershop/config"
	"barbershop/internal/metrics"
	"barbershop/internal/service"
)

// DashboardHandler upgrades admin dashboard connections.
type DashboardHandler interface {
	HandleWebSocket(c *gin.Context)
}

type Handler struct {
	services       *service.Services
	dashboard      DashboardHandler
	metrics        *metrics.Metrics
	logger         *zap.Logger
	config         *config.Config
	bookingLimiter *ipRateLimiter
	loginLimiter   *ipRateLimiter
}

func NewHandler(services *service.Services, dashboard DashboardHandler, m *metrics.Metrics, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services:       services,
		dashboard:      dashboard,
		metrics:        m,
		logger:         logger,
		config:         config,
		bookingLimiter: newIPRateLimiter(config.RateLimit.BookingsPerMinute, config.RateLimit.Burst),
		loginLimiter:   newIPRateLimiter(config.RateLimit.BookingsPerMinute, config.RateLimit.Burst),
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.metricsMiddleware())
	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		api.GET("/services", h.getActiveServices)
		api.GET("/settings/public", h.getPublicSettings)
		api.GET("/availability", h.getAvailability)
		api.GET("/availability/calendar", h.getAvailabilityCalendar)
		api.POST("/bookings", h.rateLimitMiddleware(h.bookingLimiter), h.createBooking)

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.rateLimitMiddleware(h.loginLimiter), h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		admin := api.Group("/admin", h.authMiddleware(), h.adminMiddleware())
		{
			admin.GET("/me", h.getCurrentUser)

			h.initAppointmentRoutes(admin)
			h.initScheduleRoutes(admin)
			h.initCatalogRoutes(admin)
			h.initSettingsRoutes(admin)

			team := admin.Group("/team", h.superAdminMiddleware())
			{
				team.GET("", h.getTeam)
				team.POST("", h.createAdmin)
				team.PUT("/:id/password", h.updateAdminPassword)
				team.DELETE("/:id", h.deleteAdmin)
			}
		}
	}

	if h.dashboard != nil {
		router.GET("/ws/dashboard", h.dashboard.HandleWebSocket)
	}
}

func (h *Handler) initAppointmentRoutes(admin *gin.RouterGroup) {
	appointments := admin.Group("/appointments")
	{
		appointments.GET("", h.getAppointments)
		appointments.GET("/stats", h.getAppointmentStats)
		appointments.GET("/export", h.exportAppointments)
		appointments.GET("/:id", h.getAppointmentByID)
		appointments.GET("/:id/contact-link", h.getContactLink)
		appointments.PATCH("/:id/status", h.updateAppointmentStatus)
		appointments.PUT("/:id/items", h.updateAppointmentItems)
		appointments.DELETE("/:id", h.deleteAppointment)
	}
}

func (h *Handler) initScheduleRoutes(admin *gin.RouterGroup) {
	schedule := admin.Group("/schedule")
	{
		schedule.GET("", h.getScheduleDays)
		schedule.PUT("/:weekday", h.updateScheduleDay)
	}

	blocked := admin.Group("/blocked-slots")
	{
		blocked.GET("", h.getBlockedSlots)
		blocked.POST("", h.createBlockedSlot)
		blocked.DELETE("/:id", h.deleteBlockedSlot)
	}
}

func (h *Handler) initCatalogRoutes(admin *gin.RouterGroup) {
	services := admin.Group("/services")
	{
		services.GET("", h.getAllServices)
		services.POST("", h.createService)
		services.GET("/:id", h.getServiceByID)
		services.PUT("/:id", h.updateService)
		services.DELETE("/:id", h.deleteService)
	}
}

func (h *Handler) initSettingsRoutes(admin *gin.RouterGroup) {
	settings := admin.Group("/settings")
	{
		settings.GET("", h.getAllSettings)
		settings.PUT("/business-name", h.updateBusinessName)
		settings.PUT("/slot-interval", h.updateSlotInterval)
		settings.PUT("/appearance", h.updateAppearance)
		settings.POST("/images/:kind", h.uploadImage)
		settings.DELETE("/images/:kind", h.deleteImage)
	}
}
