package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/networth-service/internal/assumptions"
	"github.com/Dan9191/networth-service/internal/config"
	"github.com/Dan9191/networth-service/internal/database"
	"github.com/Dan9191/networth-service/internal/handler"
	"github.com/Dan9191/networth-service/internal/integrations/cbr"
	"github.com/Dan9191/networth-service/internal/repository"
	"github.com/Dan9191/networth-service/internal/scheduler"
	"github.com/Dan9191/networth-service/internal/service"
	"github.com/Dan9191/networth-service/internal/utils/email"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warnf("Failed to load .env: %v", err)
	}

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	provider := assumptions.NewProvider(repo, logger)
	cbrClient := cbr.NewCBRClient(cfg, logger)
	sender := email.NewSender(cfg, logger)
	svc := service.NewService(repo, provider, cbrClient, sender, cfg, logger)
	h := handler.NewHandler(svc, provider, logger)

	sched, err := scheduler.NewScheduler(cfg, svc, logger)
	if err != nil {
		logger.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s (%s periods)", addr, cfg.Granularity)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
		logger.Warn("Scheduled jobs still running at shutdown")
	}
}
