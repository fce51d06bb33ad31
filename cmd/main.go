package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkAvailabilityHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/check_availability"
	cleanupHoldsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/cleanup_holds"
	createBookingHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/create_booking"
	createPaymentSessionHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/create_payment_session"
	createPromoCodeHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/create_promo_code"
	deleteBookingHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_booking"
	getBookingsByEmailHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/get_bookings_by_email"
	listBookingsHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/list_bookings"
	listPromoCodesHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/list_promo_codes"
	placeHoldHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/place_hold"
	setPromoCodeActiveHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/set_promo_code_active"
	stripeWebhookHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/stripe_webhook"
	updateBookingStatusHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/update_booking_status"
	validatePromoCodeHandler "github.com/m04kA/SMC-RoomBooking/internal/api/handlers/validate_promo_code"
	"github.com/m04kA/SMC-RoomBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBooking/internal/businesscal"
	"github.com/m04kA/SMC-RoomBooking/internal/config"
	"github.com/m04kA/SMC-RoomBooking/internal/infra/idempotency"
	"github.com/m04kA/SMC-RoomBooking/internal/infra/queue"
	bookingRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/catalog"
	paymentRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/payment"
	promoRepo "github.com/m04kA/SMC-RoomBooking/internal/infra/storage/promocode"
	"github.com/m04kA/SMC-RoomBooking/internal/integrations/stripe"
	"github.com/m04kA/SMC-RoomBooking/internal/notification"
	bookingsService "github.com/m04kA/SMC-RoomBooking/internal/service/bookings"
	"github.com/m04kA/SMC-RoomBooking/internal/service/pricing"
	promoCodesService "github.com/m04kA/SMC-RoomBooking/internal/service/promocodes"
	applyWebhookUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/apply_webhook"
	checkAvailabilityUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/check_availability"
	cleanupHoldsUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/cleanup_holds"
	createBookingUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_booking"
	createPaymentSessionUC "github.com/m04kA/SMC-RoomBooking/internal/usecase/create_payment_session"
	"github.com/m04kA/SMC-RoomBooking/internal/worker/holdsweeper"
	"github.com/m04kA/SMC-RoomBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/logger"
	"github.com/m04kA/SMC-RoomBooking/pkg/metrics"
	"github.com/m04kA/SMC-RoomBooking/pkg/txmanager"
)

const inlineNotificationTimeout = 2 * time.Minute

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-RoomBooking...")
	log.Info("Configuration loaded from %s", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Метрики (nil, если выключены: все методы безопасны для nil)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB).WithRetryObserver(metricsCollector)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB).WithHoldBlocks(cfg.Booking.HoldBlocksSlots)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	promoRepository := promoRepo.NewRepository(wrappedDB)

	calendar, err := businesscal.New(cfg.Calendar.Timezone)
	if err != nil {
		log.Fatal("Invalid calendar timezone %q: %v", cfg.Calendar.Timezone, err)
	}
	pricingEngine := pricing.NewEngine(cfg.Pricing.SurchargePerSlot)

	// Дедупликация событий провайдера: Redis или без нее
	var idempotencyStore applyWebhookUC.IdempotencyStore = idempotency.NopStore{}
	if cfg.Redis.Enabled {
		redisClient, err := idempotency.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			time.Duration(cfg.Redis.DialTimeout)*time.Second)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		idempotencyStore = idempotency.NewRedisStore(redisClient, cfg.Redis.KeyPrefix,
			time.Duration(cfg.Redis.WebhookTTL)*time.Second)
		log.Info("Webhook dedupe via redis at %s", cfg.Redis.Addr)
	} else {
		log.Warn("Redis disabled: duplicate webhook events are filtered by booking status only")
	}

	// Уведомления: воркер отправки и транспорт до него
	sender := notification.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	notificationWorker := notification.NewWorker(bookingRepository, sender, metricsCollector,
		cfg.SMTP.MaxAttempts, time.Duration(cfg.SMTP.BackoffBase)*time.Second, log)

	var wg sync.WaitGroup
	var dispatcher notification.Dispatcher
	if cfg.RabbitMQ.Enabled {
		publisher := queue.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		defer publisher.Close()
		dispatcher = publisher

		consumer := queue.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Prefetch, notificationWorker.Handle, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Notification consumer stopped: %v", err)
			}
		}()
		log.Info("Notifications via rabbitmq queue %s", cfg.RabbitMQ.Queue)
	} else {
		dispatcher = notification.NewInlineDispatcher(notificationWorker, inlineNotificationTimeout, log)
		log.Warn("RabbitMQ disabled: notifications are sent in-process")
	}

	stripeClient := stripe.NewClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.Currency,
		cfg.Stripe.FrontendURL, log)

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, promoRepository, dispatcher, txMgr, log).
		WithTTL(cfg.Booking.PendingTTLDuration(), cfg.Booking.HoldTTLDuration())
	promoSvc := promoCodesService.NewService(promoRepository, log)

	// Use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		catalogRepository,
		bookingRepository,
		calendar,
		cfg.Booking.HoldBlocksSlots,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		checkAvailabilityUseCase,
		catalogRepository,
		bookingRepository,
		promoRepository,
		pricingEngine,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	).WithPendingTTL(cfg.Booking.PendingTTLDuration())
	createPaymentSessionUseCase := createPaymentSessionUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		stripeClient,
		cfg.Stripe.Currency,
		txMgr,
		log,
	)
	applyWebhookUseCase := applyWebhookUC.NewUseCase(
		idempotencyStore,
		paymentRepository,
		bookingRepository,
		promoRepository,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)
	cleanupHoldsUseCase := cleanupHoldsUC.NewUseCase(bookingRepository, dispatcher, metricsCollector, log)

	// Фоновая очистка просроченных бронирований
	sweeper := holdsweeper.New(cleanupHoldsUseCase, cfg.Booking.SweepIntervalDuration(), log)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	// Handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, false, log)
	createManualBooking := createBookingHandler.NewHandler(createBookingUseCase, true, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingsByEmail := getBookingsByEmailHandler.NewHandler(bookingSvc, log)
	placeHold := placeHoldHandler.NewHandler(bookingSvc, log)
	createPaymentSession := createPaymentSessionHandler.NewHandler(createPaymentSessionUseCase, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(stripeClient, applyWebhookUseCase, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	cleanupHolds := cleanupHoldsHandler.NewHandler(cleanupHoldsUseCase, log)
	createPromoCode := createPromoCodeHandler.NewHandler(promoSvc, log)
	listPromoCodes := listPromoCodesHandler.NewHandler(promoSvc, log)
	setPromoCodeActive := setPromoCodeActiveHandler.NewHandler(promoSvc, log)
	validatePromoCode := validatePromoCodeHandler.NewHandler(promoSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/bookings/check-availability", checkAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/by-email", getBookingsByEmail.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId:[0-9]+}/hold", placeHold.Handle).Methods(http.MethodPost)

	api.HandleFunc("/payments/checkout", createPaymentSession.Handle).Methods(http.MethodPost)
	// Подлинность проверяется подписью Stripe-Signature
	api.HandleFunc("/payments/webhook", stripeWebhook.Handle).Methods(http.MethodPost)

	api.HandleFunc("/promo-codes/validate", validatePromoCode.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT, role=ADMIN)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth([]byte(cfg.Auth.JWTSecret), cfg.Auth.AdminRole, log))

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createManualBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/cleanup-holds", cleanupHolds.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	admin.HandleFunc("/promo-codes", createPromoCode.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/promo-codes", listPromoCodes.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/promo-codes/{promoId:[0-9]+}/active", setPromoCodeActive.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

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

	// Ждем фоновые воркеры
	wg.Wait()
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
