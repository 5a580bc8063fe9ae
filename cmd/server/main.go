// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AbdulAhad210904/Pro-connect/api"    // Import router setup
	"github.com/AbdulAhad210904/Pro-connect/config" // Import config loading
	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/logger"
	"github.com/AbdulAhad210904/Pro-connect/internal/payments"
	"github.com/AbdulAhad210904/Pro-connect/internal/service"
	"github.com/AbdulAhad210904/Pro-connect/internal/storage"
	"github.com/AbdulAhad210904/Pro-connect/internal/upstream"
)

var (
	customLog = logger.NewLogger()
)

func main() {
	customLog.Println("Starting ProConnect gateway...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		customLog.Fatalf("Failed to load configuration: %v", err)
	}
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Credential storage (redis mirror is optional)
	redisClient, err := storage.ConnectRedis(ctx, cfg)
	if err != nil {
		customLog.Fatalf("Failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer func() {
			customLog.Println("Closing redis connection...")
			if err := redisClient.Close(); err != nil {
				customLog.Printf("Error closing redis: %v", err)
			}
		}()
	}
	tokens := storage.NewTokenStore(redisClient)

	// 3. Auth state and the token expiry check
	state := auth.NewState()
	state.Subscribe(func(ch auth.Change) {
		customLog.Printf("Auth change: session %s %s", ch.SessionID, ch.Reason)
	})
	watcher, err := auth.NewExpiryWatcher(state, tokens, cfg.TokenCheckInterval)
	if err != nil {
		customLog.Fatalf("Failed to create token expiry watcher: %v", err)
	}
	watcher.Start()

	// 4. Remote API client and flows
	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	authService := service.NewAuthService(client, state, tokens)
	svc := &api.Services{
		Auth:     authService,
		Projects: service.NewProjectService(client),
		Settings: service.NewSettingsService(client, authService),
		Payments: service.NewPaymentService(client, payments.DefaultCatalog, cfg.PaymentRedirectURL),
		State:    state,
		Redis:    redisClient,
	}

	// 5. Setup Router (passing dependencies)
	router := api.SetupRouter(svc, cfg)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 6. Start Server
	go func() {
		customLog.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			customLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	customLog.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		customLog.Printf("Server forced to shutdown: %v", err)
	}
	watcher.Stop(shutdownCtx)
	customLog.Println("Server exited")
}
