package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/handlers"
	"github.com/BruksfildServices01/barbershop-manager/internal/idempotency"
	infraRepo "github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/payments"
	"github.com/BruksfildServices01/barbershop-manager/internal/session"
	"github.com/BruksfildServices01/barbershop-manager/internal/storage"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
	ucDashboard "github.com/BruksfildServices01/barbershop-manager/internal/usecase/dashboard"
	ucSubscription "github.com/BruksfildServices01/barbershop-manager/internal/usecase/subscription"
	ucTenant "github.com/BruksfildServices01/barbershop-manager/internal/usecase/tenant"
)

// Deps are the long-lived services built by main. Uploader and OIDC are nil
// when the feature is not configured.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Audit       *audit.Dispatcher
	Sessions    *session.Manager
	Idempotency idempotency.Store
	RateLimiter *middleware.RateLimiter
	Uploader    storage.Uploader
	Payments    payments.Gateway
	OIDC        handlers.OIDCProvider
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	barbershopRepo := infraRepo.NewBarbershopGormRepository(d.DB)
	statsRepo := infraRepo.NewStatsGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	resolveTenantUC := ucTenant.NewResolveTenant(barbershopRepo)
	updateSettingsUC := ucTenant.NewUpdateSettings(barbershopRepo, d.Audit)
	uploadLogoUC := ucTenant.NewUploadLogo(barbershopRepo, d.Uploader, d.Audit)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit)
	createPublicUC := ucAppointment.NewCreatePublicAppointment(appointmentRepo, d.Audit)
	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(appointmentRepo, d.Audit)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	dashboardUC := ucDashboard.NewComputeDashboardStats(statsRepo)
	financeUC := ucDashboard.NewComputeFinanceStats(statsRepo)
	reportUC := ucDashboard.NewBuildReport(statsRepo)

	checkoutUC := ucSubscription.NewCheckout(d.DB, d.Payments, d.Audit)
	confirmPaymentUC := ucSubscription.NewConfirmPayment(d.DB, d.Payments, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		userRepo,
		d.Sessions,
		d.OIDC,
		d.Config.AppURL,
		d.Config.IsProduction(),
	)
	meHandler := handlers.NewMeHandler(userRepo)
	barbershopHandler := handlers.NewBarbershopHandler(updateSettingsUC, uploadLogoUC)
	catalogHandler := handlers.NewCatalogHandler(d.DB, d.Audit)
	clientHandler := handlers.NewClientHandler(d.DB, d.Audit)
	transactionHandler := handlers.NewTransactionHandler(d.DB, d.Audit)
	loyaltyHandler := handlers.NewLoyaltyHandler(d.DB, d.Audit)
	packageHandler := handlers.NewPackageHandler(d.DB, checkoutUC, confirmPaymentUC, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		createAppointmentUC,
		updateStatusUC,
	)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC, financeUC, reportUC)
	publicHandler := handlers.NewPublicHandler(d.DB, createPublicUC, availabilityUC)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.GET("/login", authHandler.OIDCLogin)
		api.GET("/callback", authHandler.OIDCCallback)
		api.GET("/logout", authHandler.Logout)
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		shops := api.Group("/barbershops/:slug")
		shops.Use(d.RateLimiter.Middleware())
		{
			shops.GET("", publicHandler.GetBarbershop)
			shops.GET("/services", publicHandler.ListServices)
			shops.GET("/barbers", publicHandler.ListBarbers)
			shops.GET("/availability", publicHandler.Availability)
		}

		publicAPI := api.Group("/public")
		publicAPI.Use(d.RateLimiter.Middleware())
		{
			publicAPI.POST(
				"/appointments",
				middleware.Idempotency(d.Idempotency, d.Config.IdempotencyTTL),
				publicHandler.CreateAppointment,
			)
			publicAPI.POST("/payments/webhook", packageHandler.Webhook)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(d.Sessions))
		secured.GET("/auth/user", meHandler.GetMe)

		tenant := secured.Group("")
		tenant.Use(middleware.TenantMiddleware(resolveTenantUC))
		{
			tenant.GET("/barbershop", barbershopHandler.GetMe)
			tenant.PATCH("/barbershop", barbershopHandler.UpdateMe)
			tenant.POST("/barbershop/logo", barbershopHandler.UploadLogo)

			tenant.GET("/barbers", catalogHandler.ListBarbers)
			tenant.POST("/barbers", catalogHandler.CreateBarber)
			tenant.PATCH("/barbers/:id", catalogHandler.UpdateBarber)
			tenant.DELETE("/barbers/:id", catalogHandler.DeleteBarber)

			tenant.GET("/services", catalogHandler.ListServices)
			tenant.POST("/services", catalogHandler.CreateService)
			tenant.PATCH("/services/:id", catalogHandler.UpdateService)
			tenant.DELETE("/services/:id", catalogHandler.DeleteService)

			tenant.GET("/service-categories", catalogHandler.ListCategories)
			tenant.POST("/service-categories", catalogHandler.CreateCategory)

			tenant.GET("/clients", clientHandler.List)
			tenant.POST("/clients", clientHandler.Create)
			tenant.GET("/clients/:id", clientHandler.Get)
			tenant.PATCH("/clients/:id", clientHandler.Update)
			tenant.POST("/clients/:id/recompute", clientHandler.Recompute)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			tenant.GET("/appointments", appointmentHandler.List)
			tenant.GET("/appointments/today", appointmentHandler.Today)
			tenant.POST("/appointments", appointmentHandler.Create)
			tenant.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

			// ------------------------------
			// FINANCE
			// ------------------------------
			tenant.GET("/transactions", transactionHandler.List)
			tenant.POST("/transactions", transactionHandler.Create)
			tenant.GET("/transactions/recent", transactionHandler.Recent)

			tenant.GET("/dashboard/stats", dashboardHandler.Stats)
			tenant.GET("/finances/stats", dashboardHandler.FinanceStats)
			tenant.GET("/reports", dashboardHandler.Report)

			tenant.GET("/loyalty-plans", loyaltyHandler.List)
			tenant.POST("/loyalty-plans", loyaltyHandler.Create)

			tenant.GET("/packages", packageHandler.List)
			tenant.POST("/packages", packageHandler.Create)
			tenant.POST("/packages/:id/checkout", packageHandler.Checkout)

			tenant.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
