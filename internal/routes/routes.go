package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wheelsup-garage/vehicle-care-api/internal/audit"
	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	domain "github.com/wheelsup-garage/vehicle-care-api/internal/domain/payment"
	"github.com/wheelsup-garage/vehicle-care-api/internal/handlers"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/infra/razorpay"
	infraRepo "github.com/wheelsup-garage/vehicle-care-api/internal/infra/repository"
	"github.com/wheelsup-garage/vehicle-care-api/internal/middleware"
	ucpayment "github.com/wheelsup-garage/vehicle-care-api/internal/usecase/payment"
)

func RegisterRoutes(r *gin.Engine, dbm *db.Manager, cfg *config.Config, log *logrus.Logger) {

	// ------------------------------
	// infra
	// ------------------------------
	auditLogger := audit.New(dbm, log)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	paymentRepo := infraRepo.NewPaymentGormRepository(dbm)

	var gateway domain.Gateway
	if cfg.PaymentsConfigured() {
		gateway = razorpay.New(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}

	createOrderUC := ucpayment.NewCreateOrder(paymentRepo, gateway, cfg.RazorpayKeyID)
	verifyPaymentUC := ucpayment.NewVerifyPayment(paymentRepo, cfg.RazorpayKeySecret)

	// ------------------------------
	// handlers
	// ------------------------------
	authHandler := handlers.NewAuthHandler(dbm, cfg)
	userHandler := handlers.NewUserHandler(dbm, cfg, auditDispatcher)
	bookingHandler := handlers.NewBookingHandler(dbm, auditDispatcher)
	paymentHandler := handlers.NewPaymentHandler(dbm, cfg, createOrderUC, verifyPaymentUC)
	serviceHandler := handlers.NewServiceHandler(dbm, auditDispatcher)
	brandHandler := handlers.NewBrandHandler(dbm, auditDispatcher)
	pricingHandler := handlers.NewPricingHandler(dbm, auditDispatcher)
	cmsHandler := handlers.NewCmsHandler(dbm, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(dbm)

	authRequired := middleware.Auth(cfg, dbm)
	adminOnly := middleware.AdminOnly()

	// ------------------------------
	// static uploads (avatars)
	// ------------------------------
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")
	{
		// ------------------------------
		// users
		// ------------------------------
		users := api.Group("/users")
		{
			users.POST("", authHandler.Register)
			users.POST("/admin-signup", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.POST("/logout", authRequired, authHandler.Logout)
			users.GET("/test-connection", authHandler.TestConnection)

			users.GET("/profile", authRequired, userHandler.GetProfile)
			users.PUT("/profile", authRequired, userHandler.UpdateProfile)
			users.POST("/avatar", authRequired, userHandler.UploadAvatar)

			users.GET("", authRequired, adminOnly, userHandler.List)
			users.PUT("/:id/role", authRequired, adminOnly, userHandler.UpdateRole)
		}

		// ------------------------------
		// bookings
		// ------------------------------
		bookings := api.Group("/bookings")
		{
			bookings.POST("", authRequired, bookingHandler.Create)
			bookings.GET("/my", authRequired, bookingHandler.ListMine)
			bookings.GET("", authRequired, adminOnly, bookingHandler.List)
			bookings.PUT("/:id/status", authRequired, adminOnly, bookingHandler.UpdateStatus)
		}

		// ------------------------------
		// payments
		// ------------------------------
		payments := api.Group("/payments")
		{
			payments.GET("/config", paymentHandler.Config)
			payments.POST("/create-order", authRequired, paymentHandler.CreateOrder)
			payments.POST("/verify", authRequired, paymentHandler.Verify)
			payments.GET("", authRequired, adminOnly, paymentHandler.List)
		}

		// ------------------------------
		// catalog (reads public, writes admin)
		// ------------------------------
		services := api.Group("/services")
		{
			services.GET("", serviceHandler.List)
			services.POST("", authRequired, adminOnly, serviceHandler.Create)
			services.PUT("/:id", authRequired, adminOnly, serviceHandler.Update)
			services.DELETE("/:id", authRequired, adminOnly, serviceHandler.Delete)
		}

		brands := api.Group("/brands")
		{
			brands.GET("", brandHandler.List)
			brands.POST("", authRequired, adminOnly, brandHandler.Create)
			brands.PUT("/:id", authRequired, adminOnly, brandHandler.Update)
			brands.DELETE("/:id", authRequired, adminOnly, brandHandler.Delete)
		}

		pricing := api.Group("/pricing")
		{
			pricing.GET("", authRequired, adminOnly, pricingHandler.List)
			pricing.PUT("", authRequired, adminOnly, pricingHandler.Upsert)
			pricing.DELETE("", authRequired, adminOnly, pricingHandler.Delete)
		}

		cms := api.Group("/cms")
		{
			cms.GET("/:key", cmsHandler.Get)
			cms.PUT("/:key", authRequired, adminOnly, cmsHandler.Set)
		}

		api.GET("/audit", authRequired, adminOnly, auditLogsHandler.List)
	}

	// unmatched routes still answer JSON
	r.NoRoute(func(c *gin.Context) {
		httperr.NotFound(c, "not_found", "The resource you're looking for doesn't exist.")
	})
}
