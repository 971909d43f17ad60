package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gocab/gocab/internal/pkg/config"
	"github.com/gocab/gocab/internal/pkg/database"
	"github.com/gocab/gocab/internal/pkg/health"
	"github.com/gocab/gocab/internal/pkg/logger"
	"github.com/gocab/gocab/internal/pkg/middleware"
	natspkg "github.com/gocab/gocab/internal/pkg/nats"
	"github.com/gocab/gocab/internal/pkg/server"
	"github.com/gocab/gocab/internal/pkg/token"
	accountsHandler "github.com/gocab/gocab/services/accounts/handler"
	accountsHTTP "github.com/gocab/gocab/services/accounts/handler/http"
	accountsRepo "github.com/gocab/gocab/services/accounts/repository"
	accountsUC "github.com/gocab/gocab/services/accounts/usecase"
	"github.com/gocab/gocab/services/dispatch"
	dispatchGWHTTP "github.com/gocab/gocab/services/dispatch/gateway/http"
	dispatchGWNATS "github.com/gocab/gocab/services/dispatch/gateway/nats"
	dispatchHandler "github.com/gocab/gocab/services/dispatch/handler"
	dispatchHTTP "github.com/gocab/gocab/services/dispatch/handler/http"
	dispatchRepo "github.com/gocab/gocab/services/dispatch/repository"
	dispatchUC "github.com/gocab/gocab/services/dispatch/usecase"
)

func main() {
	appName := "gocab"
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = ".env"
	}
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NATS
	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	// Session credential issuer and verifier share one secret; the verifier
	// consults the revocation store on every check.
	accountRepo := accountsRepo.NewAccountRepo(configs, postgresClient.GetDB(), redisClient)
	issuer := token.NewIssuer(configs.JWT)
	verifier := token.NewVerifier(configs.JWT, accountRepo)

	accountUsecase := accountsUC.NewAccountUC(configs, accountRepo, accountRepo, issuer, verifier)

	// The captain location index is shared via redis by default; a single
	// instance can run the in-process index instead.
	var locator dispatch.CaptainLocator
	if configs.Dispatch.LocationIndex == "memory" {
		locator = dispatchRepo.NewMemoryLocator()
	} else {
		locator = dispatchRepo.NewRedisLocator(redisClient, configs.Dispatch.StoreTimeoutMs)
	}

	dispatchGW := dispatchGWNATS.NewNATSGateway(natsClient)
	mapsClient := dispatchGWHTTP.NewMapsClient(configs.Maps)
	dispatchUsecase := dispatchUC.NewDispatchUC(configs, locator, dispatchGW, mapsClient, accountRepo)

	// Handlers for HTTP
	authHandler := accountsHTTP.NewAuthHandler(accountUsecase)
	dispatchHTTPHandler := dispatchHTTP.NewDispatchHandler(dispatchUsecase)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.PanicRecoveryMiddleware())
	e.Use(logger.EchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName)

	// Register service routes
	accountsHandler.NewHandler(authHandler, verifier, configs).RegisterRoutes(e)
	dispatchHandler.NewHandler(dispatchHTTPHandler, verifier, configs).RegisterRoutes(e)

	// Start server with graceful shutdown
	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, shutdownTimeout)

	logger.Info("Starting server",
		logger.String("app", appName),
		logger.Int("port", configs.Server.Port),
	)

	if err := srv.Start(); err != nil {
		logger.Fatal("Server terminated", logger.Err(err))
	}
}
