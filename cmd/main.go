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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	calculatePriceHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/calculate_price"
	checkConflictsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/check_conflicts"
	confirmHoldHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/confirm_hold"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_available_slots"
	holdSlotHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/hold_slot"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/config"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/conflict"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/payout"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/pricing"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/slots"
	"github.com/m04kA/SMC-BookingEngine/internal/engine/workinghours"
	"github.com/m04kA/SMC-BookingEngine/internal/infra/cache/holds"
	instrumentRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/instrument"
	reservationRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/reservation"
	treatmentRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/treatment"
	workingHoursSource "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/workinghours"
	calculatePriceUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/calculate_price"
	checkConflictsUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/check_conflicts"
	confirmHoldUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/confirm_hold"
	getAvailableSlotsUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
	holdSlotUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/hold_slot"
	releaseExpiredHoldsUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/release_expired_holds"
	"github.com/m04kA/SMC-BookingEngine/internal/worker/holdsweeper"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/servicetime"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("BOOKING_CONFIG"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BookingEngine...")
	log.Info("Configuration loaded from %s", configPath)

	// Фоновые задачи живут до сигнала завершения
	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	// Метрики. Если они выключены, коллекторы пишут в приватный registry, который никто не отдаёт.
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		metricsCollector = metrics.NewWithRegistry(cfg.Metrics.ServiceName, prometheus.NewRegistry())
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
	if err := db.PingContext(appCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, appCtx.Done())
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Подключаемся к Redis (удержания слотов)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(appCtx).Err(); err != nil {
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Часовой пояс сервиса
	clock, err := servicetime.New(cfg.WorkingHours.Timezone)
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.WorkingHours.Timezone, err)
	}

	// Расписание рабочих часов с перечитыванием файла
	hoursSource, err := workingHoursSource.NewSource(cfg.WorkingHours.File, log)
	if err != nil {
		log.Fatal("Failed to load working hours from %s: %v", cfg.WorkingHours.File, err)
	}
	go hoursSource.Watch(appCtx, cfg.WorkingHours.ReloadEvery())
	log.Info("Working hours loaded from %s (timezone=%s)", cfg.WorkingHours.File, cfg.WorkingHours.Timezone)

	// Инициализируем репозитории
	treatmentRepository := treatmentRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	instrumentRepository := instrumentRepo.NewRepository(wrappedDB)
	holdStore := holds.NewStore(redisClient, cfg.Booking.HoldRetention())
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Движок расчётов
	resolver := workinghours.NewResolver(clock)
	generator := slots.NewGenerator(clock)
	detector := conflict.NewDetector()
	calculator := pricing.NewCalculator(clock, resolver, payout.NewSplitter())

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		treatmentRepository,
		reservationRepository,
		hoursSource,
		resolver,
		generator,
		clock,
		metricsCollector,
		log,
	)

	checkConflictsUseCase := checkConflictsUC.NewUseCase(
		reservationRepository,
		detector,
		log,
	)

	calculatePriceUseCase := calculatePriceUC.NewUseCase(
		treatmentRepository,
		instrumentRepository,
		hoursSource,
		calculator,
		metricsCollector,
		log,
	)

	holdSlotUseCase := holdSlotUC.NewUseCase(
		treatmentRepository,
		reservationRepository,
		holdStore,
		hoursSource,
		resolver,
		generator,
		clock,
		txMgr,
		cfg.Booking.HoldTTL(),
		log,
	)

	confirmHoldUseCase := confirmHoldUC.NewUseCase(
		reservationRepository,
		holdStore,
		txMgr,
		log,
	)

	releaseExpiredHoldsUseCase := releaseExpiredHoldsUC.NewUseCase(
		reservationRepository,
		holdStore,
		metricsCollector,
		log,
	)

	// Сборщик истекших удержаний
	sweeper := holdsweeper.New(releaseExpiredHoldsUseCase, cfg.Booking.SweepEvery(), cfg.Booking.SweepBatch, log)
	go sweeper.Run(appCtx)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkConflicts := checkConflictsHandler.NewHandler(checkConflictsUseCase, log)
	calculatePrice := calculatePriceHandler.NewHandler(calculatePriceUseCase, log)
	holdSlot := holdSlotHandler.NewHandler(holdSlotUseCase, log)
	confirmHold := confirmHoldHandler.NewHandler(confirmHoldUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Identify)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(appCtx, middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		})
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (X-User-ID необязателен)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/treatments/{treatmentId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка пересечения интервала с существующими резервами
	api.HandleFunc("/conflicts/check", checkConflicts.Handle).Methods(http.MethodPost)

	// Расчёт цены
	api.HandleFunc("/prices/calculate", calculatePrice.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireUser)

	// Удержание слота
	protected.HandleFunc("/holds", holdSlot.Handle).Methods(http.MethodPost)

	// Подтверждение удержания
	protected.HandleFunc("/holds/{holdId}/confirm", confirmHold.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Останавливаем sweeper, перечитывание расписания и сбор метрик пула
	stopApp()

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
