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

	cancelBookingHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/delete_booking"
	deleteTeacherHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/delete_teacher"
	getAvailableSlotsHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/get_available_slots"
	getReportsHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/get_reports"
	getSettingsHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/get_settings"
	getTeacherBookingsHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/get_teacher_bookings"
	listBookingsHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/list_bookings"
	listMaterialRequestsHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/list_material_requests"
	listRoomsHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/list_rooms"
	listTeachersHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/list_teachers"
	loginHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/login"
	registerTeacherHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/register_teacher"
	submitMaterialRequestHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/submit_material_request"
	updateBookingStatusHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/update_booking_status"
	updateMaterialStatusHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/update_material_status"
	updateSettingsHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/update_settings"
	updateTeacherApprovalHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/update_teacher_approval"
	updateTeacherProfileHandler "github.com/smartlab/SLB-BookingService/internal/api/handlers/update_teacher_profile"
	"github.com/smartlab/SLB-BookingService/internal/api/middleware"
	"github.com/smartlab/SLB-BookingService/internal/config"
	"github.com/smartlab/SLB-BookingService/internal/infra/migrations"
	bookingRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/booking"
	materialRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/material"
	reportRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/report"
	roomRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/room"
	settingsRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/settings"
	teacherRepo "github.com/smartlab/SLB-BookingService/internal/infra/storage/teacher"
	accountsService "github.com/smartlab/SLB-BookingService/internal/service/accounts"
	bookingsService "github.com/smartlab/SLB-BookingService/internal/service/bookings"
	materialsService "github.com/smartlab/SLB-BookingService/internal/service/materials"
	reportsService "github.com/smartlab/SLB-BookingService/internal/service/reports"
	settingsService "github.com/smartlab/SLB-BookingService/internal/service/settings"
	createBookingUC "github.com/smartlab/SLB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/smartlab/SLB-BookingService/internal/usecase/get_available_slots"
	"github.com/smartlab/SLB-BookingService/pkg/dbmetrics"
	"github.com/smartlab/SLB-BookingService/pkg/logger"
	"github.com/smartlab/SLB-BookingService/pkg/metrics"
	"github.com/smartlab/SLB-BookingService/pkg/simpletxmanager"
	"github.com/smartlab/SLB-BookingService/pkg/txmanager"
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

	log.Info("Starting SLB-BookingService...")
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции схемы
	if err := migrations.Run(cfg.Migrations.Path, cfg.Database); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		teacherRepository  *teacherRepo.Repository
		roomRepository     *roomRepo.Repository
		settingsRepository *settingsRepo.Repository
		materialRepository *materialRepo.Repository
		reportRepository   *reportRepo.Repository
	)

	// Интерфейс transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		teacherRepository = teacherRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		materialRepository = materialRepo.NewRepository(wrappedDB)
		reportRepository = reportRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		teacherRepository = teacherRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		materialRepository = materialRepo.NewRepository(db)
		reportRepository = reportRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, log)
	accountsSvc := accountsService.NewService(teacherRepository, bookingRepository, txMgr, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, teacherRepository, log)
	reportsSvc := reportsService.NewService(reportRepository, log)
	materialsSvc := materialsService.NewService(materialRepository, log)

	// Создаём административный аккаунт при первом запуске
	if err := accountsSvc.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatal("Failed to ensure default admin account: %v", err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		teacherRepository,
		roomRepository,
		settingsSvc,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		roomRepository,
		settingsSvc,
		log,
	)

	// Инициализируем handlers
	registerTeacher := registerTeacherHandler.NewHandler(accountsSvc, log)
	login := loginHandler.NewHandler(accountsSvc, log)
	listRooms := listRoomsHandler.NewHandler(roomRepository, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	submitMaterialRequest := submitMaterialRequestHandler.NewHandler(materialsSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	getTeacherBookings := getTeacherBookingsHandler.NewHandler(bookingsSvc, log)

	listTeachers := listTeachersHandler.NewHandler(accountsSvc, log)
	updateTeacherApproval := updateTeacherApprovalHandler.NewHandler(accountsSvc, log)
	updateTeacherProfile := updateTeacherProfileHandler.NewHandler(accountsSvc, log)
	deleteTeacher := deleteTeacherHandler.NewHandler(accountsSvc, log)

	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, accountsSvc, log)
	getReports := getReportsHandler.NewHandler(reportsSvc, accountsSvc, log)
	listMaterialRequests := listMaterialRequestsHandler.NewHandler(materialsSvc, accountsSvc, log)
	updateMaterialStatus := updateMaterialStatusHandler.NewHandler(materialsSvc, accountsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация и вход
	api.HandleFunc("/teachers/register", registerTeacher.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Помещения и свободные слоты
	api.HandleFunc("/rooms", listRooms.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Заявки на материалы (публичная подача)
	api.HandleFunc("/materials", submitMaterialRequest.Handle).Methods(http.MethodPost)

	// Текущая политика бронирования
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/teachers/{teacherId}/bookings", getTeacherBookings.Handle).Methods(http.MethodGet)

	// --- Аккаунты (администрирование) ---
	protected.HandleFunc("/teachers", listTeachers.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/teachers/{teacherId}/approval", updateTeacherApproval.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/teachers/{teacherId}", updateTeacherProfile.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/teachers/{teacherId}", deleteTeacher.Handle).Methods(http.MethodDelete)

	// --- Настройки и отчёты ---
	protected.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reports", getReports.Handle).Methods(http.MethodGet)

	// --- Заявки на материалы (администрирование) ---
	protected.HandleFunc("/materials", listMaterialRequests.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/materials/{requestId}/status", updateMaterialStatus.Handle).Methods(http.MethodPatch)

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
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
