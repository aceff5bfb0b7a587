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

	bookAppointmentHandler "github.com/Nithin050/qline-service/internal/api/handlers/book_appointment"
	cancelAppointmentHandler "github.com/Nithin050/qline-service/internal/api/handlers/cancel_appointment"
	deleteAppointmentHandler "github.com/Nithin050/qline-service/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/Nithin050/qline-service/internal/api/handlers/get_appointment"
	getDayScheduleHandler "github.com/Nithin050/qline-service/internal/api/handlers/get_day_schedule"
	getOrgAppointmentsHandler "github.com/Nithin050/qline-service/internal/api/handlers/get_org_appointments"
	getOrgDashboardHandler "github.com/Nithin050/qline-service/internal/api/handlers/get_org_dashboard"
	getOrganizationHandler "github.com/Nithin050/qline-service/internal/api/handlers/get_organization"
	getUserAppointmentsHandler "github.com/Nithin050/qline-service/internal/api/handlers/get_user_appointments"
	registerOrganizationHandler "github.com/Nithin050/qline-service/internal/api/handlers/register_organization"
	searchOrganizationsHandler "github.com/Nithin050/qline-service/internal/api/handlers/search_organizations"
	updateAppointmentStatusHandler "github.com/Nithin050/qline-service/internal/api/handlers/update_appointment_status"
	updateScheduleHandler "github.com/Nithin050/qline-service/internal/api/handlers/update_schedule"
	"github.com/Nithin050/qline-service/internal/api/middleware"
	"github.com/Nithin050/qline-service/internal/config"
	appointmentRepo "github.com/Nithin050/qline-service/internal/infra/storage/appointment"
	organizationRepo "github.com/Nithin050/qline-service/internal/infra/storage/organization"
	appointmentsService "github.com/Nithin050/qline-service/internal/service/appointments"
	organizationsService "github.com/Nithin050/qline-service/internal/service/organizations"
	bookAppointmentUC "github.com/Nithin050/qline-service/internal/usecase/book_appointment"
	getDayScheduleUC "github.com/Nithin050/qline-service/internal/usecase/get_day_schedule"
	"github.com/Nithin050/qline-service/pkg/dbmetrics"
	"github.com/Nithin050/qline-service/pkg/logger"
	"github.com/Nithin050/qline-service/pkg/metrics"
	"github.com/Nithin050/qline-service/pkg/simpletxmanager"
	"github.com/Nithin050/qline-service/pkg/txmanager"
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

	log.Info("Starting qline-service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Интерфейс transaction manager для use cases и сервисов
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		apptRepository *appointmentRepo.Repository
		orgRepository  *organizationRepo.Repository
		txMgr          TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		apptRepository = appointmentRepo.NewRepository(wrappedDB)
		orgRepository = organizationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		apptRepository = appointmentRepo.NewRepository(db)
		orgRepository = organizationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	timeProvider := &appointmentsService.RealTimeProvider{}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.New(
		apptRepository,
		orgRepository,
		timeProvider,
		log,
	)
	organizationSvc := organizationsService.New(
		orgRepository,
		txMgr,
		timeProvider,
		log,
	)

	// Инициализируем use cases
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		apptRepository,
		orgRepository,
		txMgr,
		log,
	)
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		orgRepository,
		apptRepository,
		log,
	)

	// Инициализируем handlers
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getOrgAppointments := getOrgAppointmentsHandler.NewHandler(appointmentSvc, log)
	getOrgDashboard := getOrgDashboardHandler.NewHandler(appointmentSvc, log)
	registerOrganization := registerOrganizationHandler.NewHandler(organizationSvc, log)
	getOrganization := getOrganizationHandler.NewHandler(organizationSvc, log)
	searchOrganizations := searchOrganizationsHandler.NewHandler(organizationSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(organizationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог организаций
	api.HandleFunc("/organizations", searchOrganizations.Handle).Methods(http.MethodGet)

	// Карточка организации с расписанием и выходными
	api.HandleFunc("/organizations/{orgId}", getOrganization.Handle).Methods(http.MethodGet)

	// Слоты организации на дату
	api.HandleFunc("/organizations/{orgId}/day-schedule", getDaySchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Бронирование слота
	protected.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи владельцем
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Обслужен / не явился (для сотрудников)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Удаление записи (для сотрудников)
	protected.HandleFunc("/appointments/{appointmentId}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// Записи пользователя (active / history)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление организацией (для сотрудников) ---
	// Регистрация организации с шаблонами слотов
	protected.HandleFunc("/organizations", registerOrganization.Handle).Methods(http.MethodPost)

	// Очередь и история организации
	protected.HandleFunc("/organizations/{orgId}/appointments", getOrgAppointments.Handle).Methods(http.MethodGet)

	// Сводка для панели сотрудника
	protected.HandleFunc("/organizations/{orgId}/dashboard", getOrgDashboard.Handle).Methods(http.MethodGet)

	// Управление расписанием: шаблоны, выходные, включение приема
	protected.HandleFunc("/organizations/{orgId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)

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

	log.Info("Server stopped")
}
