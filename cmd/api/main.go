package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/openrelief/aidtrack/internal/audit"
	"github.com/openrelief/aidtrack/internal/config"
	"github.com/openrelief/aidtrack/internal/handlers"
	"github.com/openrelief/aidtrack/internal/logging"
	"github.com/openrelief/aidtrack/internal/middleware"
	"github.com/openrelief/aidtrack/internal/notifier"
	"github.com/openrelief/aidtrack/internal/observability"
	"github.com/openrelief/aidtrack/internal/services"
	"github.com/openrelief/aidtrack/internal/store"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/openrelief/aidtrack/docs"
)

// @title           AidTrack API
// @version         1.0
// @description     API for tracking aid-disbursement campaigns. Claims progress through a fixed approval lifecycle (requested, verified, approved, disbursed, archived), and users verify control of an email or phone channel through short-lived OTP sessions.

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// @tag.name claims
// @tag.description Claim lifecycle operations

// @tag.name verification
// @tag.description OTP verification sessions

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Open the persistence gateway
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := store.Open(ctx, config.AppConfig)
	cancel()
	if err != nil {
		logging.Logger.Fatal("failed to open store", zap.Error(err))
	}

	// Audit sink: async Mongo-backed writer, fire-and-forget
	auditSink := audit.NewMongoSink(
		st.AuditLogs(),
		logging.Logger.Named("audit"),
		config.AppConfig.AuditWorkers,
		config.AppConfig.AuditBufferSize,
	)

	// Notification dispatcher: external gateway when configured, log otherwise
	var dispatcher notifier.Dispatcher
	if config.AppConfig.NotifierURL != "" {
		dispatcher = notifier.NewGatewayDispatcher(
			config.AppConfig.NotifierURL,
			config.AppConfig.NotifierClientID,
			config.AppConfig.NotifierSecret,
			st.Redis,
			config.AppConfig.NotifierTimeout,
			logging.Logger.Named("notifier"),
		)
	} else {
		dispatcher = notifier.NewLogDispatcher(logging.Logger.Named("notifier"))
	}

	claimService := services.NewClaimService(st, logging.Logger.Named("claims"), auditSink)
	verificationService := services.NewVerificationService(
		st,
		logging.Logger.Named("verification"),
		auditSink,
		dispatcher,
		config.AppConfig.VerificationTTL,
		config.AppConfig.NotifierTimeout,
	)

	claimHandler := handlers.NewClaimHandler(claimService, logging.Logger.Named("claims"))
	verificationHandler := handlers.NewVerificationHandler(verificationService, logging.Logger.Named("verification"))
	healthHandler := handlers.NewHealthHandler(st, logging.Logger.Named("health"))

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracing(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", healthHandler.Check)

		secured := v1.Group("", middleware.APIKeyAuth(config.AppConfig.APIKey))
		{
			secured.POST("/claims", claimHandler.Create)
			secured.GET("/claims", claimHandler.List)
			secured.GET("/claims/:id", claimHandler.Get)
			secured.POST("/claims/:id/verify", claimHandler.Verify)
			secured.POST("/claims/:id/approve", claimHandler.Approve)
			secured.POST("/claims/:id/disburse", claimHandler.Disburse)
			secured.PATCH("/claims/:id/archive", claimHandler.Archive)

			secured.POST("/verification/start", verificationHandler.Start)
			secured.POST("/verification/complete", verificationHandler.Complete)
			secured.POST("/verification/resend", verificationHandler.Resend)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	auditSink.Stop()

	if err := st.Close(shutdownCtx); err != nil {
		logging.Logger.Error("failed to close store", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
