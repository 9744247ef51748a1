package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	cancelBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/cancel_booking"
	completeExpiredHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/complete_expired"
	deleteBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/delete_booking"
	exportCalendarHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/export_calendar"
	findBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/find_booking"
	getBookingHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_booking"
	getDisabledDatesHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_disabled_dates"
	getSlotAvailabilityHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_slot_availability"
	getSlotCatalogHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/get_slot_catalog"
	healthHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/list_bookings"
	reserveSlotHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/reserve_slot"
	updateBookingStatusHandler "github.com/m04kA/SMC-SlotBooking/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-SlotBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBooking/internal/bootstrap"
	"github.com/m04kA/SMC-SlotBooking/internal/config"
	bookingsService "github.com/m04kA/SMC-SlotBooking/internal/service/bookings"
	exportCalendarUC "github.com/m04kA/SMC-SlotBooking/internal/usecase/export_calendar"
	getDisabledDatesUC "github.com/m04kA/SMC-SlotBooking/internal/usecase/get_disabled_dates"
	getSlotAvailabilityUC "github.com/m04kA/SMC-SlotBooking/internal/usecase/get_slot_availability"
	reserveSlotUC "github.com/m04kA/SMC-SlotBooking/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-SlotBooking/internal/worker/autocomplete"
	"github.com/m04kA/SMC-SlotBooking/pkg/logger"
	"github.com/m04kA/SMC-SlotBooking/pkg/metrics"
)

// version проставляется при сборке: -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-SlotBooking %s...", version)
	log.Info("Configuration loaded from %s", *configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Каталог слотов и политики занятости
	catalog, err := cfg.Catalog.Build()
	if err != nil {
		log.Fatal("Invalid slot catalog: %v", err)
	}
	interactivePolicy, _ := cfg.Availability.InteractivePolicy()
	calendarPolicy, _ := cfg.Availability.CalendarPolicy()
	log.Info("Slot catalog: %v, off-day=%s, timezone=%s", catalog.Labels(), catalog.OffDay(), catalog.Location())

	// Хранилище бронирований
	storage, err := bootstrap.OpenStorage(ctx, cfg.Database, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to open booking store: %v", err)
	}
	defer storage.Close()

	// Интеграции: блокировка слотов и события
	locker := bootstrap.NewLocker(ctx, cfg.Redis, log)
	defer locker.Close()

	publisher := bootstrap.NewPublisher(cfg.Kafka, log)
	defer publisher.Close()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		storage.Bookings,
		catalog,
		publisher,
		metricsCollector,
		log,
	).WithSweepOnRead(cfg.Sweep.OnRead)

	// Инициализируем use cases
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		storage.Bookings,
		catalog,
		locker,
		storage.TxManager,
		publisher,
		metricsCollector,
		log,
	).WithMaxAdvanceDays(cfg.Availability.MaxAdvanceDays)

	getSlotAvailabilityUseCase := getSlotAvailabilityUC.NewUseCase(storage.Bookings, catalog, log)

	getDisabledDatesUseCase := getDisabledDatesUC.NewUseCase(
		storage.Bookings,
		catalog,
		interactivePolicy,
		cfg.Availability.MaxRangeDays,
		log,
	).WithMaxAdvanceDays(cfg.Availability.MaxAdvanceDays)

	exportCalendarUseCase := exportCalendarUC.NewUseCase(
		storage.Bookings,
		catalog,
		calendarPolicy,
		cfg.Availability.MaxRangeDays,
		log,
	)

	// Инициализируем handlers
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	getSlotAvailability := getSlotAvailabilityHandler.NewHandler(getSlotAvailabilityUseCase, log)
	getDisabledDates := getDisabledDatesHandler.NewHandler(getDisabledDatesUseCase, log)
	getSlotCatalog := getSlotCatalogHandler.NewHandler(catalog, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	findBooking := findBookingHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	completeExpired := completeExpiredHandler.NewHandler(bookingSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(exportCalendarUseCase, log)

	health := healthHandler.NewHandler(version, log).
		WithCritical(storage.Driver, storage).
		WithOptional("redis", locker)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health/live", health.Liveness).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", health.Readiness).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Каталог слотов
	api.HandleFunc("/slots", getSlotCatalog.Handle).Methods(http.MethodGet)

	// Доступность слотов на дату
	api.HandleFunc("/availability/slots", getSlotAvailability.Handle).Methods(http.MethodGet)

	// Недоступные даты периода
	api.HandleFunc("/availability/dates", getDisabledDates.Handle).Methods(http.MethodGet)

	// Бронирование слота
	api.HandleFunc("/bookings", reserveSlot.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))
	if cfg.Admin.Token == "" {
		log.Warn("admin.token is empty, admin API is not protected")
	}

	// Список бронирований с автозавершением прошедших
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Поиск бронирования по (дата, слот, статус); регистрируется до /bookings/{bookingId}
	admin.HandleFunc("/bookings/lookup", findBooking.Handle).Methods(http.MethodGet)

	// Ручной запуск автозавершения
	admin.HandleFunc("/bookings/complete-expired", completeExpired.Handle).Methods(http.MethodPost)

	// Бронирование по ID
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Смена статуса
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Отмена
	admin.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Удаление (мягкое, статус deleted)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// Экспорт календаря
	admin.HandleFunc("/calendar", exportCalendar.Handle).Methods(http.MethodGet)

	// Фоновое автозавершение (если включено)
	if interval := cfg.Sweep.Interval(); interval > 0 {
		runner := autocomplete.NewRunner(bookingSvc, interval, 0, log)
		go runner.Run(ctx)
	}

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

	// Ожидаем сигнал завершения
	<-ctx.Done()

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
