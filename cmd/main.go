package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accounts-service/internal/api"
	"accounts-service/internal/batch"
	"accounts-service/internal/config"
	"accounts-service/internal/domain/account"
	"accounts-service/internal/event"
	"accounts-service/internal/infrastructure/database/postgres"
	"accounts-service/internal/infrastructure/logging"

	_ "accounts-service/docs"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title Accounts Service API
// @version 1.0
// @description REST API for managing bank customers and their accounts.

// @contact.name API Support
// @contact.email support@accounts-service.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	rabbitMQConn := setupRabbitMQ(cfg, logger)

	accountService, accountRepo := initializeServices(cfg, rabbitMQConn, dbPool, logger)

	reconcileJob := batch.NewOrphanedAccountsJob(accountRepo, logger)
	cronScheduler := startBatchJobs(cfg, logger, reconcileJob)

	router := api.SetupRouter(accountService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeServices(cfg *config.Config, rabbitConn *amqp.Connection, dbPool *pgxpool.Pool, logger *slog.Logger) (account.AccountService, account.Repository) {
	logger.Info("Initializing application components...")
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	accountRepo := postgres.NewAccountRepository(dbPool, logger)

	var eventPublisher event.EventPublisher
	if rabbitConn != nil {
		publisher, err := event.NewRabbitMQEventPublisher(rabbitConn, cfg.RabbitMQ.ExchangeName, logger)
		if err != nil {
			logger.Error("Failed to initialize event publisher, continuing without events", "error", err)
		} else {
			eventPublisher = publisher
		}
	}

	accountService := account.NewAccountService(customerRepo, accountRepo, eventPublisher, logger)
	return accountService, accountRepo
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	shutdownHTTPServer(srv, serverErrors, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
	} else {
		logger.Info("RabbitMQ connection closed.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, reconcileJob *batch.OrphanedAccountsJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.ReconcileSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 3 * * *"
		logger.Warn("Batch reconcile schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.ReconcileTimeout
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Minute
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "OrphanedAccountsReconcile")
		jobLogger.Info("Cron triggered: Running orphaned accounts reconcile job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := reconcileJob.Run(ctx); runErr != nil {
			jobLogger.Error("Orphaned accounts reconcile job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Orphaned accounts reconcile job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule orphaned accounts reconcile job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled orphaned accounts reconcile job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

// setupRabbitMQ returns nil when messaging is disabled or unreachable; the
// service runs without lifecycle events in that case.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ is disabled, lifecycle events will not be published.")
		return nil
	}

	if cfg.RabbitMQ.Host == "" {
		logger.Error("RabbitMQ host is not configured, continuing without events.")
		return nil
	}

	rabbitMQURI := fmt.Sprintf("amqp://%s:%d", cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	if cfg.RabbitMQ.Username != "" && cfg.RabbitMQ.Password != "" {
		rabbitMQURI = fmt.Sprintf("amqp://%s:%s@%s:%d", cfg.RabbitMQ.Username, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	}

	conn, err := connectRabbitMQ(rabbitMQURI, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, continuing without events", "error", err)
		return nil
	}
	return conn
}
