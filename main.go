// File: keazy/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"keazy/config"
	"keazy/database"
	providerRepo "keazy/database/repository/provider"
	querylogRepo "keazy/database/repository/querylog"
	serviceRepo "keazy/database/repository/service"
	slotRepo "keazy/database/repository/slot"
	userRepoPkg "keazy/database/repository/user"
	"keazy/handlers"
	"keazy/middleware"
	"keazy/mlclient"
	"keazy/routes"
	"keazy/services/booking"
	"keazy/services/catalog"
	"keazy/services/intent"
	"keazy/services/matching"
	"keazy/services/query"
	"keazy/services/slots"
	"keazy/services/users"
	"keazy/tasks"
	"keazy/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	svcRepo := serviceRepo.NewMongoServiceRepo()
	slRepo := slotRepo.NewMongoSlotRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	logRepo := querylogRepo.NewMongoQueryLogRepo()

	// external classifier client.
	mlTimeout := time.Duration(config.AppConfig.MLTimeoutSec) * time.Second
	ml := mlclient.New(config.AppConfig.MLServiceURL, config.AppConfig.MLAPIKey, mlTimeout)

	// services.
	synonymCatalog := catalog.New(
		svcRepo,
		time.Duration(config.AppConfig.SynonymCacheTTLSec)*time.Second,
		nil,
		logger,
	)
	resolver := intent.NewResolver(synonymCatalog, ml, logger)
	resolver.Timeout = mlTimeout

	matcher := &matching.DefaultMatcher{
		ProviderRepo: provRepo,
		CacheClient:  utils.GetCacheClient(),
		Logger:       logger,
	}
	aggregator := &slots.DefaultAggregator{SlotRepo: slRepo}
	userService := &users.DefaultService{Repo: userRepo}
	ledger := &booking.DefaultLedger{
		SlotRepo:     slRepo,
		ProviderRepo: provRepo,
		UserRepo:     userRepo,
		Logger:       logger,
	}

	// retrain trigger: enqueue side in the orchestrator, worker in background.
	retrainClient := tasks.NewClient()
	defer retrainClient.Close()
	tasks.InitRetrainWorker(ml)

	orchestrator := &query.Orchestrator{
		Users:            userService,
		Resolver:         resolver,
		Matcher:          matcher,
		Slots:            aggregator,
		Logs:             logRepo,
		Retrain:          retrainClient,
		RetrainThreshold: config.AppConfig.RetrainThreshold,
		Logger:           logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Query:    handlers.NewQueryHandler(orchestrator, ledger, logger),
		Provider: handlers.NewProviderHandler(provRepo, slRepo, matcher, aggregator, logger),
		Service:  handlers.NewServiceHandler(svcRepo, synonymCatalog, logger),
		Health:   &handlers.HealthHandler{ML: ml},
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
