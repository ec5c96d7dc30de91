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

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	blockSlotHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/block_slot"
	cancelTurnHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/cancel_turn"
	confirmTurnHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/confirm_turn"
	createSlotHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/delete_slot"
	getAvailableSlotsHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/get_available_slots"
	getClientTurnsHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/get_client_turns"
	getStatsHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/get_stats"
	getTurnHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/get_turn"
	getTurnNotificationsHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/get_turn_notifications"
	getTurnsHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/get_turns"
	purgeNotificationsHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/purge_notifications"
	purgeTurnsHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/purge_turns"
	requestTurnHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/request_turn"
	resendNotificationsHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/resend_notifications"
	unblockSlotHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/unblock_slot"
	updateSlotHandler "github.com/m04kA/SISLIM-TurnoService/internal/api/handlers/update_slot"
	"github.com/m04kA/SISLIM-TurnoService/internal/api/middleware"
	"github.com/m04kA/SISLIM-TurnoService/internal/config"
	actorsRepo "github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/actors"
	notificationRepo "github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/notification"
	slotRepo "github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/slot"
	turnRepo "github.com/m04kA/SISLIM-TurnoService/internal/infra/storage/turn"
	notificationsService "github.com/m04kA/SISLIM-TurnoService/internal/service/notifications"
	slotsService "github.com/m04kA/SISLIM-TurnoService/internal/service/slots"
	turnsService "github.com/m04kA/SISLIM-TurnoService/internal/service/turns"
	requestTurnUC "github.com/m04kA/SISLIM-TurnoService/internal/usecase/request_turn"
	"github.com/m04kA/SISLIM-TurnoService/pkg/dbmetrics"
	"github.com/m04kA/SISLIM-TurnoService/pkg/logger"
	"github.com/m04kA/SISLIM-TurnoService/pkg/metrics"
	"github.com/m04kA/SISLIM-TurnoService/pkg/simpletxmanager"
	"github.com/m04kA/SISLIM-TurnoService/pkg/txmanager"
)

// noopTxManager транзакционный менеджер для memory-бэкенда:
// in-memory репозитории атомарны на уровне операций, транзакций нет
type noopTxManager struct{}

func (noopTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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

	log.Info("Starting SISLIM-TurnoService...")
	log.Info("Configuration loaded from config.toml, storage backend: %s", cfg.Database.Backend)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Интерфейсы репозиториев (заполняются выбранным бэкендом)
	var (
		turnRepository         turnsService.TurnRepository
		turnWriteRepository    requestTurnUC.TurnRepository
		slotRepository         slotsService.SlotRepository
		slotBookingRepository  requestTurnUC.SlotRepository
		notificationRepository notificationsService.NotificationRepository
		actorRepository        turnsService.ActorRepository
		clientRepository       requestTurnUC.ActorRepository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	switch cfg.Database.Backend {
	case config.BackendPostgres:
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

		// Накатываем миграции
		if cfg.Database.AutoMigrate {
			m, err := migrate.New("file://"+cfg.Database.MigrationsPath, cfg.Database.URL())
			if err != nil {
				log.Fatal("Failed to initialize migrations: %v", err)
			}
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				log.Fatal("Failed to apply migrations: %v", err)
			}
			log.Info("Migrations applied from %s", cfg.Database.MigrationsPath)
		}

		if cfg.Metrics.Enabled {
			wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")

			tr := turnRepo.NewRepository(wrappedDB)
			sr := slotRepo.NewRepository(wrappedDB)
			ar := actorsRepo.NewRepository(wrappedDB)
			turnRepository = tr
			turnWriteRepository = tr
			slotRepository = sr
			slotBookingRepository = sr
			notificationRepository = notificationRepo.NewRepository(wrappedDB)
			actorRepository = ar
			clientRepository = ar
			txMgr = txmanager.NewTransactionManager(wrappedDB)
		} else {
			tr := turnRepo.NewRepository(db)
			sr := slotRepo.NewRepository(db)
			ar := actorsRepo.NewRepository(db)
			turnRepository = tr
			turnWriteRepository = tr
			slotRepository = sr
			slotBookingRepository = sr
			notificationRepository = notificationRepo.NewRepository(db)
			actorRepository = ar
			clientRepository = ar
			txMgr = simpletxmanager.NewTransactionManager(db)
		}

	case config.BackendMemory:
		tr := turnRepo.NewMemoryRepository()
		sr := slotRepo.NewMemoryRepository()
		ar := actorsRepo.NewMemoryRepository()
		turnRepository = tr
		turnWriteRepository = tr
		slotRepository = sr
		slotBookingRepository = sr
		notificationRepository = notificationRepo.NewMemoryRepository()
		actorRepository = ar
		clientRepository = ar
		txMgr = noopTxManager{}
		log.Warn("Using in-memory storage backend, data will not survive restart")

	default:
		log.Fatal("Unknown storage backend: %s", cfg.Database.Backend)
	}

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(notificationRepository, log)
	turnSvc := turnsService.NewService(
		turnRepository,
		slotRepository,
		actorRepository,
		notificationSvc,
		log,
	)
	slotSvc := slotsService.NewService(slotRepository, log)

	// Инициализируем use cases
	requestTurnUseCase := requestTurnUC.NewUseCase(
		turnWriteRepository,
		slotBookingRepository,
		clientRepository,
		notificationSvc,
		txMgr,
		cfg.Booking.AllowFallbackSlot,
		log,
	)

	// Инициализируем handlers
	requestTurn := requestTurnHandler.NewHandler(requestTurnUseCase, log)
	getTurn := getTurnHandler.NewHandler(turnSvc, log)
	getTurns := getTurnsHandler.NewHandler(turnSvc, log)
	getClientTurns := getClientTurnsHandler.NewHandler(turnSvc, log)
	confirmTurn := confirmTurnHandler.NewHandler(turnSvc, log)
	cancelTurn := cancelTurnHandler.NewHandler(turnSvc, log)
	purgeTurns := purgeTurnsHandler.NewHandler(turnSvc, log)
	getTurnNotifications := getTurnNotificationsHandler.NewHandler(notificationSvc, log)
	purgeNotifications := purgeNotificationsHandler.NewHandler(notificationSvc, log)
	resendNotifications := resendNotificationsHandler.NewHandler(notificationSvc, log)
	getStats := getStatsHandler.NewHandler(turnSvc, notificationSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	blockSlot := blockSlotHandler.NewHandler(slotSvc, log)
	unblockSlot := unblockSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotSvc, log)

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

	// Список окон доступности
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Сводная статистика
	api.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на уборку ---
	protected.HandleFunc("/turns", requestTurn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/turns", getTurns.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/turns/{turnId}", getTurn.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/turns/{turnId}/confirm", confirmTurn.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/turns/{turnId}/cancel", cancelTurn.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/turns/{turnId}/notifications", getTurnNotifications.Handle).Methods(http.MethodGet)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/turns", getClientTurns.Handle).Methods(http.MethodGet)

	// --- Управление окнами доступности (для администраторов) ---
	protected.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/slots/{slotId}/block", blockSlot.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/slots/{slotId}/unblock", unblockSlot.Handle).Methods(http.MethodPatch)

	// --- Обслуживание ---
	protected.HandleFunc("/maintenance/purge-turns", purgeTurns.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/maintenance/purge-notifications", purgeNotifications.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/maintenance/resend-notifications", resendNotifications.Handle).Methods(http.MethodPost)

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
