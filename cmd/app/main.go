package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/config"
	apptCancel "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/appointments/cancel"
	apptCreate "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/appointments/create"
	apptDelete "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/appointments/delete"
	apptGet "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/appointments/get"
	apptStatus "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/appointments/status"
	availGet "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/availability/get"
	blockedCreate "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/blocked_slots/create"
	blockedDelete "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/blocked_slots/delete"
	blockedGet "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/blocked_slots/get"
	configGet "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/business_config/get"
	configUpdate "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/business_config/update"
	hoursGet "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/business_hours/get"
	hoursUpdate "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/business_hours/update"
	clientCreate "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/clients/create"
	clientDelete "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/clients/delete"
	clientGet "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/clients/get"
	clientStats "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/clients/stats"
	clientUpdate "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/clients/update"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/health"
	reportGet "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/reports/get"
	serviceCreate "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/services/create"
	serviceDelete "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/services/delete"
	serviceGet "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/services/get"
	serviceUpdate "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/http-server/handlers/services/update"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/lock"
	svc "github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/service"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/storage/postgres"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/handlers/slogpretty"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/middleware/mwLogger"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/middleware/ratelimit"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/sl"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/tracing"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const migrateTimeout = 30 * time.Second

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Error("Failed to init tracing", sl.Err(err))
		os.Exit(1)
	}

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), migrateTimeout)
	err = storage.Migrate(migrateCtx)
	cancelMigrate()
	if err != nil {
		log.Error("Failed to migrate storage", sl.Err(err))
		os.Exit(1)
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(log, storage, locker, svc.Options{
		LockTTL:                 cfg.Booking.LockTTL,
		AdvanceDays:             cfg.Booking.AdvanceDays,
		CancellationHoursBefore: cfg.Booking.CancellationHoursBefore,
		ReminderHoursBefore:     cfg.Booking.ReminderHoursBefore,
		SalonName:               cfg.Booking.SalonName,
	})

	limiter := ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go limiter.Run(sweepCtx, time.Minute)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Health
	router.Get("/healthz", health.Live())
	router.Get("/readyz", health.Ready(log, map[string]health.Pinger{
		"postgres": storage,
		"redis":    locker,
	}))

	// Availability
	router.Get("/availability", availGet.New(log, service))

	// Public booking endpoints
	router.Group(func(r chi.Router) {
		if cfg.RateLimit.TrustProxy {
			r.Use(middleware.RealIP)
		}
		r.Use(limiter.Middleware(log))

		r.Post("/appointments", apptCreate.New(log, service))
		r.Post("/appointments/cancel/{token}", apptCancel.NewByToken(log, service))
	})

	// Appointments
	router.Get("/appointments", apptGet.New(log, service))
	router.Get("/appointments/{id}", apptGet.New(log, service))
	router.Put("/appointments/{id}/status", apptStatus.New(log, service))
	router.Put("/appointments/{id}/cancel", apptCancel.New(log, service))
	router.Delete("/appointments/{id}", apptDelete.New(log, service))

	// Business Hours
	router.Get("/business_hours", hoursGet.New(log, service))
	router.Put("/business_hours", hoursUpdate.New(log, service))

	// Business Config
	router.Get("/business_config", configGet.New(log, service))
	router.Put("/business_config", configUpdate.New(log, service))

	// Blocked Slots
	router.Post("/blocked_slots", blockedCreate.New(log, service))
	router.Get("/blocked_slots", blockedGet.New(log, service))
	router.Get("/blocked_slots/{id}", blockedGet.New(log, service))
	router.Delete("/blocked_slots/{id}", blockedDelete.New(log, service))

	// Clients
	router.Post("/clients", clientCreate.New(log, service))
	router.Get("/clients", clientGet.New(log, service))
	router.Get("/clients/{id}", clientGet.New(log, service))
	router.Put("/clients/{id}", clientUpdate.New(log, service))
	router.Delete("/clients/{id}", clientDelete.New(log, service))
	router.Get("/clients/{id}/stats", clientStats.New(log, service))

	// Services
	router.Post("/services", serviceCreate.New(log, service))
	router.Get("/services", serviceGet.New(log, service))
	router.Get("/services/{id}", serviceGet.New(log, service))
	router.Put("/services/{id}", serviceUpdate.New(log, service))
	router.Delete("/services/{id}", serviceDelete.New(log, service))

	// Reports
	router.Get("/reports/financial", reportGet.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      otelhttp.NewHandler(router, "http.server"),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if err := storage.Close(); err != nil {
		log.Error("Failed to close storage", sl.Err(err))
	} else {
		log.Info("Storage closed")
	}

	if err := locker.Close(); err != nil {
		log.Error("Failed to close locker", sl.Err(err))
	} else {
		log.Info("Locker closed")
	}

	if err := shutdownTracing(ctx); err != nil {
		log.Error("Failed to flush traces", sl.Err(err))
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
