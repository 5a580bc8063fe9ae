// api/router.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/AbdulAhad210904/Pro-connect/api/handlers"
	"github.com/AbdulAhad210904/Pro-connect/api/middleware"
	"github.com/AbdulAhad210904/Pro-connect/config"
	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/service"
)

// Services bundles what the handlers need.
type Services struct {
	Auth     *service.AuthService
	Projects *service.ProjectService
	Settings *service.SettingsService
	Payments *service.PaymentService
	State    *auth.State
	Redis    *redis.Client
}

// SetupRouter initializes the Gin router and sets up all routes.
func SetupRouter(svc *Services, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.MaxMultipartMemory = 32 << 20

	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// It should run after basic middleware like Logger/Recovery
	// but before the routing happens, so it wraps the handlers.
	router.Use(middleware.ErrorHandler())

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	projectHandler := handlers.NewProjectHandler(svc.Projects)
	settingsHandler := handlers.NewSettingsHandler(svc.Settings)
	paymentHandler := handlers.NewPaymentHandler(svc.Payments)
	healthHandler := handlers.NewHealthHandler(svc.Redis, svc.State)

	requireAuth := middleware.CombinedAuthMiddleware(svc.Auth)

	// --- Public Routes ---
	router.GET("/health", healthHandler.Health)

	// Credential endpoints are rate limited per IP
	ratelimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	authRoutes := router.Group("/auth")
	authRoutes.Use(middleware.RateLimitMiddleware(ratelimiter))
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/password/reset-code", authHandler.RequestPasswordReset)
		authRoutes.POST("/password/reset", authHandler.ResetPassword)

		authRoutes.POST("/logout", requireAuth, authHandler.Logout)
		authRoutes.POST("/refresh", requireAuth, authHandler.Refresh)
	}

	// --- Protected Routes ---
	apiRoutes := router.Group("/api/v1")
	apiRoutes.Use(requireAuth)
	{
		apiRoutes.GET("/me", authHandler.Me)

		apiRoutes.GET("/projects", projectHandler.ListProjects)
		apiRoutes.POST("/projects", projectHandler.CreateProject)
		apiRoutes.GET("/projects/can-apply", projectHandler.CanApply)
		apiRoutes.POST("/projects/:id/apply", projectHandler.Apply)

		apiRoutes.GET("/settings", settingsHandler.Overview)
		apiRoutes.POST("/settings/password", settingsHandler.ChangePassword)
		apiRoutes.POST("/settings/email/code", settingsHandler.SendEmailCode)
		apiRoutes.POST("/settings/email/verify", settingsHandler.VerifyEmailCode)
		apiRoutes.POST("/settings/phone/code", settingsHandler.SendPhoneOTP)
		apiRoutes.POST("/settings/phone/verify", settingsHandler.VerifyPhoneOTP)
		apiRoutes.DELETE("/sessions/:id", settingsHandler.DisconnectSession)
		apiRoutes.POST("/account/disable", settingsHandler.DisableAccount)
		apiRoutes.DELETE("/account", settingsHandler.DeleteAccount)

		apiRoutes.GET("/payments/plans", paymentHandler.Plans)
		apiRoutes.GET("/payments/active", paymentHandler.Active)
		apiRoutes.POST("/payments/checkout", paymentHandler.Checkout)
		apiRoutes.GET("/payments/:id", paymentHandler.Status)
		apiRoutes.POST("/payments/:id/retry", paymentHandler.Retry)
	}

	return router
}
