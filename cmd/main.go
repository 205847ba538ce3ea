package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MRabbani007/tasker/broker"
	"github.com/MRabbani007/tasker/config"
	"github.com/MRabbani007/tasker/database"
	"github.com/MRabbani007/tasker/logger"
	"github.com/MRabbani007/tasker/middleware"
	"github.com/MRabbani007/tasker/routes"
	"github.com/MRabbani007/tasker/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Setup(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// The broker is optional: without it the API still works, but live
	// updates stay queued in the outbox until a broker comes back.
	brokerAvailable := true
	if err := broker.InitProducer(cfg.NatsURL); err != nil {
		logger.Log.Warn("Failed to connect to NATS, live updates are disabled", zap.Error(err))
		brokerAvailable = false
	} else {
		defer broker.CloseProducer()
	}

	topics := []string{
		broker.UserEventsTopic,
		broker.TaskEventsTopic,
		broker.TaskListEventsTopic,
		broker.NoteEventsTopic,
		broker.JournalEventsTopic,
		broker.TrashEventsTopic,
	}

	webSocketService := services.NewWebSocketService(db, topics)
	services.WebSocketServiceInstance = webSocketService
	webSocketService.Start()
	defer webSocketService.Stop()

	if brokerAvailable {
		eventHandlerService := services.NewEventHandlerService(db, time.Duration(cfg.EventDispatchSeconds)*time.Second)
		services.EventHandlerServiceInstance = eventHandlerService
		eventHandlerService.Start()
		defer eventHandlerService.Stop()
	} else {
		logger.Log.Info("Event dispatcher is disabled until a broker is available")
	}

	authService := services.NewAuthService(cfg.SessionExpirationHours, cfg.ChannelTokenSecret, cfg.ChannelTokenTTLMinutes)
	services.AuthServiceInstance = authService

	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	sweeperService := services.NewSweeperService(db, cfg.SweepIntervalMinutes, cfg.TrashRetentionDays)
	services.SweeperServiceInstance = sweeperService
	if err := sweeperService.Start(); err != nil {
		logger.Log.Fatal("Failed to start sweeper", zap.Error(err))
	}
	defer sweeperService.Stop()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	routes.RegisterAuthRoutes(router, db, authService, userService)

	authMiddleware := middleware.AuthMiddleware(db, authService)

	api := router.Group("/api/v1", authMiddleware)
	routes.RegisterUserRoutes(api, db, userService)
	routes.RegisterTaskRoutes(api, db, services.TaskServiceInstance)
	routes.RegisterTaskListRoutes(api, db, services.TaskListServiceInstance)
	routes.RegisterNoteRoutes(api, db, services.NoteServiceInstance)
	routes.RegisterJournalRoutes(api, db, services.JournalServiceInstance)
	routes.RegisterTrashRoutes(api, db, services.TrashServiceInstance)

	routes.RegisterSearchRoutes(router, db, services.SearchServiceInstance, authMiddleware)
	routes.RegisterWebSocketRoutes(router, webSocketService, authService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Log.Info("Shutting down server...")
		broker.CloseAllConsumers()
		logger.Sync()
		os.Exit(0)
	}()

	logger.Log.Info("API server is running", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
