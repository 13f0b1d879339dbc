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

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-ConsultationService/internal/api"
	createBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_booking"
	getDaySlotsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_day_slots"
	getMonthAvailabilityHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_month_availability"
	getSettingsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/list_bookings"
	updateSettingsHandler "github.com/m04kA/SMC-ConsultationService/internal/api/handlers/update_settings"
	"github.com/m04kA/SMC-ConsultationService/internal/api/middleware"
	"github.com/m04kA/SMC-ConsultationService/internal/config"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/infra/storage/migrations"
	settingsRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ConsultationService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ConsultationService/internal/service/bookings"
	settingsService "github.com/m04kA/SMC-ConsultationService/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-ConsultationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ConsultationService/pkg/logger"
	"github.com/m04kA/SMC-ConsultationService/pkg/metrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting consultation gateway...")

	loc, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Ограничение частоты бронирований: Redis, при его недоступности - память процесса
	localLimiter := middleware.NewLocalLimiter(cfg.RateLimit.BookingPerMinute)
	var bookingLimiter middleware.Limiter = localLimiter
	var fallbackLimiter middleware.Limiter
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, rate limit falls back to memory: %v", cfg.Redis.Addr, err)
		}
		cancel()

		bookingLimiter = middleware.NewRedisLimiter(redisClient, cfg.RateLimit.BookingPerMinute)
		fallbackLimiter = localLimiter
		log.Info("Redis rate limiter enabled (addr=%s, limit=%d/min)", cfg.Redis.Addr, cfg.RateLimit.BookingPerMinute)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	settingsRepository := settingsRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	defaults := domain.GatewaySettings{
		BookingSettings: domain.BookingSettings{
			Enabled:         cfg.Booking.Enabled,
			DurationMinutes: cfg.Booking.DurationMinutes,
			MaxAdvanceDays:  cfg.Booking.MaxAdvanceDays,
		},
		MinNoticeMinutes: cfg.Booking.MinNoticeMinutes,
	}
	settingsSvc := settingsService.NewService(settingsRepository, defaults, log)
	availabilitySvc := availability.NewService(bookingRepository, settingsSvc, cfg.Schedule, loc, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsSvc,
		cfg.Schedule,
		txMgr,
		metricsCollector,
		loc,
		cfg.Meeting.BaseURL,
		log,
	)

	// Настраиваем роутер
	opts := api.Options{
		BookingLimit: middleware.RateLimit(bookingLimiter, fallbackLimiter, cfg.RateLimit.FailOpen, log),
		AdminToken:   cfg.Server.AdminToken,
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = middleware.MetricsMiddleware(metricsCollector)
		opts.MetricsPath = cfg.Metrics.Path
		opts.MetricsHandler = promhttp.Handler()
	}
	if cfg.Server.AdminToken == "" {
		log.Warn("server.admin_token is empty, admin routes are disabled")
	}

	router := api.NewRouter(api.Routes{
		GetSettings:          getSettingsHandler.NewHandler(settingsSvc, log),
		GetMonthAvailability: getMonthAvailabilityHandler.NewHandler(availabilitySvc, log),
		GetDaySlots:          getDaySlotsHandler.NewHandler(availabilitySvc, metricsCollector, log),
		CreateBooking:        createBookingHandler.NewHandler(createBookingUseCase, log),
		GetAdminSettings:     getSettingsHandler.NewAdminHandler(settingsSvc, log),
		UpdateSettings:       updateSettingsHandler.NewHandler(settingsSvc, log),
		ListBookings:         listBookingsHandler.NewHandler(bookingSvc, log),
		GetBooking:           getBookingHandler.NewHandler(bookingSvc, log),
	}, opts, log)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(router, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
