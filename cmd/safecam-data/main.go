package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"safecam-data/internal/alert"
	"safecam-data/internal/config"
	"safecam-data/internal/database"
	httpapi "safecam-data/internal/http"
	"safecam-data/internal/logger"
	"safecam-data/internal/repository"
	"safecam-data/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "safecam-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	log.Info("connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	notifier, closeNotifier := alert.BuildNotifier(&cfg.Alert, log)
	defer closeNotifier()

	eventsRepo := repository.NewEventsRepository(db, log)
	usersRepo := repository.NewUsersRepository(db, log)
	camerasRepo := repository.NewCamerasRepository(db, log)
	feedbackRepo := repository.NewFeedbackRepository(db, log)
	reportsRepo := repository.NewReportsRepository(db, log)

	eventService := service.NewEventService(eventsRepo, notifier, cfg.Validation, log)
	authService := service.NewAuthService(usersRepo, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, log)
	reportService := service.NewReportService(reportsRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterEventRoutes(httpapi.NewEventHandler(eventService, log))
	router.RegisterAuthRoutes(httpapi.NewAuthHandler(authService, log))
	router.RegisterCameraRoutes(httpapi.NewCameraHandler(camerasRepo, log))
	router.RegisterFeedbackRoutes(httpapi.NewFeedbackHandler(feedbackService, log))
	router.RegisterReportRoutes(httpapi.NewReportHandler(reportService, log))
	router.RegisterHealthRoutes(httpapi.NewHealthHandler(db, log))

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.AccessLog(log, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
