package routes

import (
	"net/http"

	"clinic-booking-server/internal/handlers"
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything SetupRoutes mounts. AccountStatus lets the auth
// middleware reject tokens whose account was deleted after issue.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Accounts      *handlers.AccountHandler
	Appointments  *handlers.AppointmentHandler
	Blogs         *handlers.BlogHandler
	Tokens        middleware.TokenValidator
	AccountStatus middleware.AccountStatusChecker
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", h.Auth.Register)
			authRoutes.POST("/login", h.Auth.Login)
			authRoutes.POST("/forgot-password", h.Auth.ForgotPassword)
			authRoutes.POST("/reset-password", h.Auth.ResetPassword)
		}

		blogRoutes := public.Group("/blogs")
		{
			blogRoutes.GET("", h.Blogs.GetBlogs)
			blogRoutes.GET("/latest", h.Blogs.GetLatestBlogs)
			blogRoutes.GET("/:id", h.Blogs.GetBlogByID)
			blogRoutes.GET("/staff/:staffId/count", h.Blogs.CountBlogsByStaff)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(h.Tokens, h.AccountStatus))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.GET("/me", h.Auth.GetProfile)
			authRoutesPrivate.PUT("/password", h.Auth.ChangePassword)
		}

		accountRoutes := private.Group("/accounts")
		accountRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin)) // Only Admins
		{
			accountRoutes.GET("", h.Accounts.GetAccounts)
			accountRoutes.GET("/:id", h.Accounts.GetAccountByID)
			accountRoutes.DELETE("/:id", h.Accounts.DeleteAccount)
			accountRoutes.PATCH("/:id/restore", h.Accounts.RestoreAccount)
		}

		clinicStaff := middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleStaff, models.RoleAdmin)

		appointmentRoutes := private.Group("/appointments")
		{
			// Booking, per-customer listing and detail are open to customers;
			// the handler confines them to their own records.
			appointmentRoutes.POST("", h.Appointments.CreateAppointment)
			appointmentRoutes.GET("", clinicStaff, h.Appointments.GetAppointments)
			appointmentRoutes.GET("/status/:status", clinicStaff, h.Appointments.GetAppointmentsByStatus)
			appointmentRoutes.GET("/customer/:customerId", h.Appointments.GetAppointmentsByCustomer)
			appointmentRoutes.GET("/doctor/:doctorId", clinicStaff, h.Appointments.GetAppointmentsByDoctor)
			appointmentRoutes.GET("/doctor/:doctorId/summary", clinicStaff, h.Appointments.GetDoctorSummary)
			appointmentRoutes.GET("/doctor/:doctorId/export", clinicStaff, h.Appointments.ExportDoctorAppointments)
			appointmentRoutes.GET("/:id", h.Appointments.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", clinicStaff, h.Appointments.UpdateAppointmentStatus)
			appointmentRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleStaff, models.RoleAdmin), h.Appointments.DeleteAppointment)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}
