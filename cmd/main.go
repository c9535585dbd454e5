package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/slotline/bookingengine/internal/api/handlers/cancel_booking"
	changeStatusHandler "github.com/slotline/bookingengine/internal/api/handlers/change_status"
	createBookingHandler "github.com/slotline/bookingengine/internal/api/handlers/create_booking"
	createServiceHandler "github.com/slotline/bookingengine/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/slotline/bookingengine/internal/api/handlers/delete_service"
	exportBookingsHandler "github.com/slotline/bookingengine/internal/api/handlers/export_bookings"
	getAvailableSlotsHandler "github.com/slotline/bookingengine/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/slotline/bookingengine/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/slotline/bookingengine/internal/api/handlers/get_calendar"
	getSettingsHandler "github.com/slotline/bookingengine/internal/api/handlers/get_settings"
	listServicesHandler "github.com/slotline/bookingengine/internal/api/handlers/list_services"
	recordAdvanceHandler "github.com/slotline/bookingengine/internal/api/handlers/record_advance"
	updateHoursHandler "github.com/slotline/bookingengine/internal/api/handlers/update_hours"
	updateServiceHandler "github.com/slotline/bookingengine/internal/api/handlers/update_service"
	updateSettingsHandler "github.com/slotline/bookingengine/internal/api/handlers/update_settings"
	"github.com/slotline/bookingengine/internal/api/middleware"
	"github.com/slotline/bookingengine/internal/config"
	"github.com/slotline/bookingengine/internal/events"
	bookingRepo "github.com/slotline/bookingengine/internal/infra/storage/booking"
	settingsRepo "github.com/slotline/bookingengine/internal/infra/storage/settings"
	notifierClient "github.com/slotline/bookingengine/internal/integrations/notifier"
	bookingsService "github.com/slotline/bookingengine/internal/service/bookings"
	settingsService "github.com/slotline/bookingengine/internal/service/settings"
	createBookingUC "github.com/slotline/bookingengine/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/slotline/bookingengine/internal/usecase/get_available_slots"
	"github.com/slotline/bookingengine/pkg/dbmetrics"
	"github.com/slotline/bookingengine/pkg/logger"
	"github.com/slotline/bookingengine/pkg/metrics"
	"github.com/slotline/bookingengine/pkg/simpletxmanager"
	"github.com/slotline/bookingengine/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting booking engine...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Публикация событий: лог всегда, webhook - если настроен
	var publisher events.Publisher = events.NewLogPublisher(log)
	if cfg.Notifier.Enabled {
		client := notifierClient.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		publisher = events.NewFanout(publisher, events.NewWebhookPublisher(client, log))
		log.Info("Webhook notifier enabled (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		settingsRepository,
		txMgr,
		publisher,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		txMgr,
		publisher,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	changeStatus := changeStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	recordAdvance := recordAdvanceHandler.NewHandler(bookingSvc, log)
	getCalendar := getCalendarHandler.NewHandler(bookingSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	updateHours := updateHoursHandler.NewHandler(settingsSvc, log)
	listServices := listServicesHandler.NewHandler(settingsSvc, log)
	createService := createServiceHandler.NewHandler(settingsSvc, log)
	updateService := updateServiceHandler.NewHandler(settingsSvc, log)
	deleteService := deleteServiceHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/businesses/{businessId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Список услуг бизнеса
	api.HandleFunc("/businesses/{businessId}/services", listServices.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", changeStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/advance", recordAdvance.Handle).Methods(http.MethodPost)

	// --- Календарь ---
	protected.HandleFunc("/businesses/{businessId}/calendar", getCalendar.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/calendar/export", exportBookings.Handle).Methods(http.MethodGet)

	// --- Конфигурация бизнеса ---
	protected.HandleFunc("/businesses/{businessId}/settings", getSettings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/settings", updateSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/hours", updateHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/businesses/{businessId}/services/{serviceId}", updateService.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
