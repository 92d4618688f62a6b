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

	createAvailabilityHandler "github.com/tutoweb/booking-service/internal/api/handlers/create_availability"
	createRatingHandler "github.com/tutoweb/booking-service/internal/api/handlers/create_rating"
	createReservationHandler "github.com/tutoweb/booking-service/internal/api/handlers/create_reservation"
	deleteAvailabilityHandler "github.com/tutoweb/booking-service/internal/api/handlers/delete_availability"
	deleteReservationHandler "github.com/tutoweb/booking-service/internal/api/handlers/delete_reservation"
	editReservationHandler "github.com/tutoweb/booking-service/internal/api/handlers/edit_reservation"
	getFreeSlotsHandler "github.com/tutoweb/booking-service/internal/api/handlers/get_free_slots"
	getNotificationsHandler "github.com/tutoweb/booking-service/internal/api/handlers/get_notifications"
	getReservationHandler "github.com/tutoweb/booking-service/internal/api/handlers/get_reservation"
	getStudentRatingsHandler "github.com/tutoweb/booking-service/internal/api/handlers/get_student_ratings"
	getStudentReservationsHandler "github.com/tutoweb/booking-service/internal/api/handlers/get_student_reservations"
	getTutorAvailabilityHandler "github.com/tutoweb/booking-service/internal/api/handlers/get_tutor_availability"
	getTutorRatingsHandler "github.com/tutoweb/booking-service/internal/api/handlers/get_tutor_ratings"
	getTutorReservationsHandler "github.com/tutoweb/booking-service/internal/api/handlers/get_tutor_reservations"
	markNotificationReadHandler "github.com/tutoweb/booking-service/internal/api/handlers/mark_notification_read"
	updateAvailabilityHandler "github.com/tutoweb/booking-service/internal/api/handlers/update_availability"
	"github.com/tutoweb/booking-service/internal/api/middleware"
	"github.com/tutoweb/booking-service/internal/config"
	availabilityRepo "github.com/tutoweb/booking-service/internal/infra/storage/availability"
	catalogRepo "github.com/tutoweb/booking-service/internal/infra/storage/catalog"
	notificationRepo "github.com/tutoweb/booking-service/internal/infra/storage/notification"
	paymentRepo "github.com/tutoweb/booking-service/internal/infra/storage/payment"
	ratingRepo "github.com/tutoweb/booking-service/internal/infra/storage/rating"
	reservationRepo "github.com/tutoweb/booking-service/internal/infra/storage/reservation"
	availabilityService "github.com/tutoweb/booking-service/internal/service/availability"
	notificationsService "github.com/tutoweb/booking-service/internal/service/notifications"
	ratingsService "github.com/tutoweb/booking-service/internal/service/ratings"
	reservationsService "github.com/tutoweb/booking-service/internal/service/reservations"
	createRatingUC "github.com/tutoweb/booking-service/internal/usecase/create_rating"
	createReservationUC "github.com/tutoweb/booking-service/internal/usecase/create_reservation"
	editReservationUC "github.com/tutoweb/booking-service/internal/usecase/edit_reservation"
	getFreeSlotsUC "github.com/tutoweb/booking-service/internal/usecase/get_free_slots"
	"github.com/tutoweb/booking-service/pkg/logger"
	"github.com/tutoweb/booking-service/pkg/metrics"
	"github.com/tutoweb/booking-service/pkg/txmanager"
)

const dbStatsInterval = 15 * time.Second

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

	log.Info("Starting TutoWeb-BookingService...")
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

	if cfg.Metrics.Enabled {
		go metricsCollector.CollectDBStats(db, dbStatsInterval, stopMetricsCh)
		log.Info("Database pool metrics collection started")
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(db)
	availabilityRepository := availabilityRepo.NewRepository(db)
	ratingRepository := ratingRepo.NewRepository(db)
	notificationRepository := notificationRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)
	catalogRepository := catalogRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		reservationRepository,
		catalogRepository,
		txMgr,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		catalogRepository,
		paymentRepository,
		ratingRepository,
		log,
	)
	ratingsSvc := ratingsService.NewService(ratingRepository, log)
	notificationsSvc := notificationsService.NewService(
		notificationRepository,
		reservationRepository,
		catalogRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		availabilityRepository,
		catalogRepository,
		notificationsSvc,
		txMgr,
		log,
	)
	editReservationUseCase := editReservationUC.NewUseCase(
		reservationRepository,
		availabilityRepository,
		catalogRepository,
		notificationsSvc,
		txMgr,
		log,
		cfg.Booking.CancellationNoticeMinutes,
		cfg.Booking.VirtualRoomBaseURL,
	)
	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		reservationRepository,
		availabilityRepository,
		catalogRepository,
		log,
		cfg.Booking.SlotDurationMinutes,
	)
	createRatingUseCase := createRatingUC.NewUseCase(
		reservationRepository,
		ratingRepository,
		paymentRepository,
		catalogRepository,
		notificationsSvc,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	editReservation := editReservationHandler.NewHandler(editReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	getStudentReservations := getStudentReservationsHandler.NewHandler(reservationsSvc, log)
	getTutorReservations := getTutorReservationsHandler.NewHandler(reservationsSvc, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	getTutorAvailability := getTutorAvailabilityHandler.NewHandler(availabilitySvc, log)
	createRating := createRatingHandler.NewHandler(createRatingUseCase, log)
	getTutorRatings := getTutorRatingsHandler.NewHandler(ratingsSvc, log)
	getStudentRatings := getStudentRatingsHandler.NewHandler(ratingsSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationsSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notificationsSvc, log)

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

	// Свободные слоты репетитора на дату
	api.HandleFunc("/tutors/{tutorId}/free-slots",
		getFreeSlots.HandleByTutor).Methods(http.MethodGet)

	// Свободные слоты по конкретной услуге
	api.HandleFunc("/services/{serviceId}/free-slots",
		getFreeSlots.HandleByService).Methods(http.MethodGet)

	// Расписание репетитора (?date= — только свободные окна)
	api.HandleFunc("/tutors/{tutorId}/availability",
		getTutorAvailability.Handle).Methods(http.MethodGet)

	// Оценки репетитора
	api.HandleFunc("/tutors/{tutorId}/ratings",
		getTutorRatings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Резервации ---
	// Создание резервации
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение резервации по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Редактирование резервации (перенос, смена статуса)
	protected.HandleFunc("/reservations/{reservationId}", editReservation.Handle).Methods(http.MethodPut)

	// Удаление резервации
	protected.HandleFunc("/reservations/{reservationId}", deleteReservation.Handle).Methods(http.MethodDelete)

	// Резервации текущего студента
	protected.HandleFunc("/students/me/reservations", getStudentReservations.Handle).Methods(http.MethodGet)

	// Резервации репетитора (?date= — активные на дату)
	protected.HandleFunc("/tutors/{tutorId}/reservations", getTutorReservations.Handle).Methods(http.MethodGet)

	// --- Окна доступности ---
	// Создание окна
	protected.HandleFunc("/availability", createAvailability.Handle).Methods(http.MethodPost)

	// Редактирование окна
	protected.HandleFunc("/availability/{windowId}", updateAvailability.Handle).Methods(http.MethodPut)

	// Удаление окна
	protected.HandleFunc("/availability/{windowId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Оценки ---
	// Создание оценки
	protected.HandleFunc("/ratings", createRating.Handle).Methods(http.MethodPost)

	// Оценки, оставленные текущим студентом
	protected.HandleFunc("/students/me/ratings", getStudentRatings.Handle).Methods(http.MethodGet)

	// --- Уведомления ---
	// Уведомления текущего пользователя (?unread=true — только непрочитанные)
	protected.HandleFunc("/users/me/notifications", getNotifications.Handle).Methods(http.MethodGet)

	// Отметить все уведомления прочитанными
	protected.HandleFunc("/users/me/notifications/read", markNotificationRead.HandleAll).Methods(http.MethodPatch)

	// Отметить уведомление прочитанным
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

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
