package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/tutorschool/msms/internal/app"
	"github.com/tutorschool/msms/internal/config"
	msmsHttp "github.com/tutorschool/msms/internal/http"
	"github.com/tutorschool/msms/internal/repository"
	"github.com/tutorschool/msms/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}

	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	termRepo := repository.NewTermRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	requestRepo := repository.NewLessonRequestRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	transferRepo := repository.NewTransferRepository(pool)

	// Сервисы
	termService := service.NewTermService(termRepo, logger)
	studentService := service.NewStudentService(studentRepo, logger)
	requestService := service.NewRequestService(requestRepo, studentRepo, logger)
	bookingService := service.NewBookingService(pool, termRepo, requestRepo, invoiceRepo, lessonRepo, logger)
	ledgerService := service.NewLedgerService(pool, studentRepo, invoiceRepo, lessonRepo, transferRepo, logger)

	router := msmsHttp.New(
		msmsHttp.NewTermHandler(termService),
		msmsHttp.NewStudentHandler(studentService),
		msmsHttp.NewRequestHandler(requestService),
		msmsHttp.NewBookingHandler(bookingService),
		msmsHttp.NewPaymentHandler(ledgerService),
	)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}
