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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	authHandler "github.com/maxturnos/turnos-service/internal/api/handlers/auth"
	blockSlotsHandler "github.com/maxturnos/turnos-service/internal/api/handlers/block_slots"
	bookingsHandler "github.com/maxturnos/turnos-service/internal/api/handlers/bookings"
	businessHandler "github.com/maxturnos/turnos-service/internal/api/handlers/business"
	calendarHandler "github.com/maxturnos/turnos-service/internal/api/handlers/calendar"
	cancelBookingHandler "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_booking"
	cancelDayHandler "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day"
	cancelDayBookingsHandler "github.com/maxturnos/turnos-service/internal/api/handlers/cancel_day_bookings"
	catalogHandler "github.com/maxturnos/turnos-service/internal/api/handlers/catalog"
	createBookingHandler "github.com/maxturnos/turnos-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/maxturnos/turnos-service/internal/api/handlers/get_available_slots"
	getCommonSlotsHandler "github.com/maxturnos/turnos-service/internal/api/handlers/get_common_slots"
	getEarningsHandler "github.com/maxturnos/turnos-service/internal/api/handlers/get_earnings"
	modifyBookingHandler "github.com/maxturnos/turnos-service/internal/api/handlers/modify_booking"
	restoreDayHandler "github.com/maxturnos/turnos-service/internal/api/handlers/restore_day"
	reviewsHandler "github.com/maxturnos/turnos-service/internal/api/handlers/reviews"
	superAdminHandler "github.com/maxturnos/turnos-service/internal/api/handlers/superadmin"
	unblockSlotsHandler "github.com/maxturnos/turnos-service/internal/api/handlers/unblock_slots"
	"github.com/maxturnos/turnos-service/internal/api/middleware"
	"github.com/maxturnos/turnos-service/internal/config"
	"github.com/maxturnos/turnos-service/internal/infra/cache"
	"github.com/maxturnos/turnos-service/internal/infra/events"
	"github.com/maxturnos/turnos-service/internal/infra/storage/archive"
	bookingRepo "github.com/maxturnos/turnos-service/internal/infra/storage/booking"
	businessRepo "github.com/maxturnos/turnos-service/internal/infra/storage/business"
	calendarRepo "github.com/maxturnos/turnos-service/internal/infra/storage/calendar"
	catalogRepo "github.com/maxturnos/turnos-service/internal/infra/storage/catalog"
	reviewRepo "github.com/maxturnos/turnos-service/internal/infra/storage/review"
	userRepo "github.com/maxturnos/turnos-service/internal/infra/storage/user"
	"github.com/maxturnos/turnos-service/internal/infra/tracing"
	"github.com/maxturnos/turnos-service/internal/receipt"
	"github.com/maxturnos/turnos-service/internal/seed"
	authService "github.com/maxturnos/turnos-service/internal/service/auth"
	bookingsService "github.com/maxturnos/turnos-service/internal/service/bookings"
	businessService "github.com/maxturnos/turnos-service/internal/service/business"
	calendarService "github.com/maxturnos/turnos-service/internal/service/calendar"
	catalogService "github.com/maxturnos/turnos-service/internal/service/catalog"
	reviewsService "github.com/maxturnos/turnos-service/internal/service/reviews"
	superAdminService "github.com/maxturnos/turnos-service/internal/service/superadmin"
	blockSlotsUC "github.com/maxturnos/turnos-service/internal/usecase/block_slots"
	cancelBookingUC "github.com/maxturnos/turnos-service/internal/usecase/cancel_booking"
	cancelDayUC "github.com/maxturnos/turnos-service/internal/usecase/cancel_day"
	cancelDayBookingsUC "github.com/maxturnos/turnos-service/internal/usecase/cancel_day_bookings"
	createBookingUC "github.com/maxturnos/turnos-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/maxturnos/turnos-service/internal/usecase/get_available_slots"
	getCommonSlotsUC "github.com/maxturnos/turnos-service/internal/usecase/get_common_slots"
	getEarningsUC "github.com/maxturnos/turnos-service/internal/usecase/get_earnings"
	modifyBookingUC "github.com/maxturnos/turnos-service/internal/usecase/modify_booking"
	restoreDayUC "github.com/maxturnos/turnos-service/internal/usecase/restore_day"
	unblockSlotsUC "github.com/maxturnos/turnos-service/internal/usecase/unblock_slots"
	"github.com/maxturnos/turnos-service/internal/workers"
	"github.com/maxturnos/turnos-service/pkg/dbmetrics"
	"github.com/maxturnos/turnos-service/pkg/logger"
	"github.com/maxturnos/turnos-service/pkg/metrics"
	"github.com/maxturnos/turnos-service/pkg/txmanager"
)

const (
	// id бронирования и сущностей каталога только числовой, чтобы не перехватывать /orden, /todas и т.п.
	idPattern = "{id:[0-9]+}"
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

	log.Info("Starting turnos-service...")
	log.Info("Configuration loaded from config.toml")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены). nil-коллектор безопасен: Inc* и observe его пропускают.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трейсинг
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, cfg.Metrics.ServiceName)
	if err != nil {
		log.Fatal("Failed to setup tracing: %v", err)
	}
	if cfg.Tracing.Endpoint != "" {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.Endpoint)
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
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	// Кеш витрины (Redis) с откатом на NopCache
	storefrontCache, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, storefront cache disabled: %v", err)
		storefrontCache = cache.NopCache{}
	}

	// Доменные события (Kafka)
	publisher := events.New(cfg.Kafka, log)
	defer publisher.Close()

	// Архив прошедших бронирований (MongoDB)
	bookingArchive, err := archive.New(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to booking archive: %v", err)
	}
	defer bookingArchive.Close(context.Background())

	// Стартовый каталог для новых бизнесов
	var template superAdminService.Template
	if cfg.Seed.TemplateFile != "" {
		tpl, err := seed.Load(cfg.Seed.TemplateFile)
		if err != nil {
			log.Warn("Seed template not loaded, new businesses start empty: %v", err)
		} else {
			template = tpl
			log.Info("Seed template loaded from %s", cfg.Seed.TemplateFile)
		}
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	businessRepository := businessRepo.NewRepository(wrappedDB)
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	serviceRepository := catalogRepo.NewServiceRepository(wrappedDB)
	staffRepository := catalogRepo.NewStaffRepository(wrappedDB)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	tokens := authService.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	authSvc := authService.NewService(userRepository, businessRepository, tokens, cfg.Auth.SuperAdminEmails, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, businessRepository, bookingArchive, receipt.Render, log)
	businessSvc := businessService.NewService(
		businessRepository,
		serviceRepository,
		staffRepository,
		reviewRepository,
		storefrontCache,
		log,
	)
	catalogSvc := catalogService.NewService(businessRepository, serviceRepository, staffRepository, storefrontCache, log)
	calendarSvc := calendarService.NewService(calendarRepository, log)
	reviewsSvc := reviewsService.NewService(reviewRepository, businessRepository, storefrontCache, log)
	superAdminSvc := superAdminService.NewService(
		businessRepository,
		serviceRepository,
		staffRepository,
		userRepository,
		template,
		txMgr,
		storefrontCache,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		serviceRepository,
		staffRepository,
		calendarRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	modifyBookingUseCase := modifyBookingUC.NewUseCase(
		bookingRepository,
		businessRepository,
		staffRepository,
		calendarRepository,
		txMgr,
		publisher,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(bookingRepository, txMgr, publisher, metricsCollector, log)
	cancelDayBookingsUseCase := cancelDayBookingsUC.NewUseCase(bookingRepository, publisher, metricsCollector, log)
	cancelDayUseCase := cancelDayUC.NewUseCase(
		bookingRepository,
		businessRepository,
		calendarRepository,
		txMgr,
		storefrontCache,
		publisher,
		metricsCollector,
		log,
	)
	restoreDayUseCase := restoreDayUC.NewUseCase(businessRepository, calendarRepository, txMgr, storefrontCache, log)
	blockSlotsUseCase := blockSlotsUC.NewUseCase(staffRepository, calendarRepository, metricsCollector, log)
	unblockSlotsUseCase := unblockSlotsUC.NewUseCase(staffRepository, calendarRepository, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		businessRepository,
		serviceRepository,
		staffRepository,
		calendarRepository,
		log,
	)
	getCommonSlotsUseCase := getCommonSlotsUC.NewUseCase(getAvailableSlotsUseCase, businessRepository, staffRepository, log)
	getEarningsUseCase := getEarningsUC.NewUseCase(bookingRepository, bookingArchive, log)

	// Инициализируем handlers
	auth := authHandler.NewHandler(authSvc, log)
	bookings := bookingsHandler.NewHandler(bookingsSvc, log)
	business := businessHandler.NewHandler(businessSvc, log)
	catalog := catalogHandler.NewHandler(catalogSvc, log)
	calendar := calendarHandler.NewHandler(calendarSvc, log)
	reviews := reviewsHandler.NewHandler(reviewsSvc, log)
	superAdmin := superAdminHandler.NewHandler(superAdminSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	modifyBooking := modifyBookingHandler.NewHandler(modifyBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	cancelDayBookings := cancelDayBookingsHandler.NewHandler(cancelDayBookingsUseCase, log)
	cancelDay := cancelDayHandler.NewHandler(cancelDayUseCase, log)
	restoreDay := restoreDayHandler.NewHandler(restoreDayUseCase, log)
	blockSlots := blockSlotsHandler.NewHandler(blockSlotsUseCase, log)
	unblockSlots := unblockSlotsHandler.NewHandler(unblockSlotsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCommonSlots := getCommonSlotsHandler.NewHandler(getCommonSlotsUseCase, log)
	getEarnings := getEarningsHandler.NewHandler(getEarningsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// AUTH (с ограничением частоты запросов по IP)
	// ============================================================

	limiter := middleware.NewRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Use(limiter.Middleware)
	authRoutes.HandleFunc("/register", auth.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", auth.Login).Methods(http.MethodPost)

	// ============================================================
	// PUBLIC ROUTES (токен необязателен)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth(authSvc))

	// --- Бизнес и каталог ---
	public.HandleFunc("/negocios/{codigo}", business.Get).Methods(http.MethodGet)
	public.HandleFunc("/negocios/{codigo}/vitrina", business.Storefront).Methods(http.MethodGet)
	public.HandleFunc("/servicios/{codigo}", catalog.ListServices).Methods(http.MethodGet)
	public.HandleFunc("/personal/{codigo}", catalog.ListStaff).Methods(http.MethodGet)
	public.HandleFunc("/resenas/{codigo}", reviews.ListApproved).Methods(http.MethodGet)

	// --- Доступность ---
	public.HandleFunc("/reservas/horarios-disponibles", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/reservas/horarios-comunes", getCommonSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/dias-cancelados/{establecimiento}", calendar.ListDays).Methods(http.MethodGet)
	public.HandleFunc("/horarios-bloqueados/{establecimiento}", calendar.ListBlocked).Methods(http.MethodGet)

	// Гость получает 401 с понятным сообщением от самих handlers
	public.HandleFunc("/reservas", createBooking.Handle).Methods(http.MethodPost)
	public.HandleFunc("/resenas/{codigo}", reviews.Create).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc))

	protected.HandleFunc("/reservas/mias", bookings.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/reservas/"+idPattern, bookings.Get).Methods(http.MethodGet)
	protected.HandleFunc("/reservas/"+idPattern+"/comprobante", bookings.Receipt).Methods(http.MethodGet)
	protected.HandleFunc("/reservas/"+idPattern, modifyBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservas/"+idPattern, cancelBooking.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (владелец бизнеса или суперадмин)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(authSvc), middleware.RequireAdmin)

	// --- Бронирования бизнеса ---
	admin.HandleFunc("/reservas", bookings.List).Methods(http.MethodGet)
	admin.HandleFunc("/reservas/por-mes", bookings.ByMonth).Methods(http.MethodGet)
	admin.HandleFunc("/reservas/cancelar-dia", cancelDayBookings.Handle).Methods(http.MethodPost)

	// --- Календарь ---
	admin.HandleFunc("/dias-cancelados", cancelDay.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/dias-cancelados/{establecimiento}/{fecha}", restoreDay.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/horarios-bloqueados", blockSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/horarios-bloqueados", unblockSlots.Handle).Methods(http.MethodDelete)

	// --- Настройки бизнеса ---
	admin.HandleFunc("/negocios/{codigo}/horarios", business.UpdateSchedule).Methods(http.MethodPut)
	admin.HandleFunc("/negocios/{codigo}/categorias", business.UpdateCategories).Methods(http.MethodPut)
	admin.HandleFunc("/negocios/{codigo}/orden-resenas", business.UpdateReviewOrder).Methods(http.MethodPut)
	admin.HandleFunc("/negocios/{codigo}/ingresos", getEarnings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/negocios/{codigo}/ingresos/grafico", getEarnings.HandleChart).Methods(http.MethodGet)

	// --- Каталог ---
	admin.HandleFunc("/servicios/{codigo}", catalog.CreateService).Methods(http.MethodPost)
	admin.HandleFunc("/servicios/{codigo}/orden", catalog.ReorderServices).Methods(http.MethodPut)
	admin.HandleFunc("/servicios/{codigo}/"+idPattern, catalog.UpdateService).Methods(http.MethodPut)
	admin.HandleFunc("/servicios/{codigo}/"+idPattern, catalog.DeleteService).Methods(http.MethodDelete)
	admin.HandleFunc("/personal/{codigo}", catalog.CreateStaff).Methods(http.MethodPost)
	admin.HandleFunc("/personal/{codigo}/orden", catalog.ReorderStaff).Methods(http.MethodPut)
	admin.HandleFunc("/personal/{codigo}/"+idPattern, catalog.UpdateStaff).Methods(http.MethodPut)
	admin.HandleFunc("/personal/{codigo}/"+idPattern, catalog.DeleteStaff).Methods(http.MethodDelete)

	// --- Модерация отзывов ---
	admin.HandleFunc("/resenas/{codigo}/todas", reviews.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/resenas/{codigo}/"+idPattern+"/moderacion", reviews.Moderate).Methods(http.MethodPut)
	admin.HandleFunc("/resenas/{codigo}/"+idPattern, reviews.Delete).Methods(http.MethodDelete)

	// ============================================================
	// SUPERADMIN ROUTES
	// ============================================================

	super := api.PathPrefix("/superadmin").Subrouter()
	super.Use(middleware.Auth(authSvc), middleware.RequireSuperAdmin)
	super.HandleFunc("/negocios", superAdmin.List).Methods(http.MethodGet)
	super.HandleFunc("/negocios", superAdmin.Create).Methods(http.MethodPost)
	super.HandleFunc("/negocios/{codigo}", superAdmin.Update).Methods(http.MethodPut)
	super.HandleFunc("/negocios/{codigo}", superAdmin.Delete).Methods(http.MethodDelete)

	// Обертки: лимит тела, таймаут запроса, трейсинг, CORS
	var handler http.Handler = http.MaxBytesHandler(r, cfg.Server.MaxBodyBytes)
	handler = http.TimeoutHandler(handler, time.Duration(cfg.Server.RequestTimeout)*time.Second, `{"message":"Tiempo de espera agotado"}`)
	handler = otelhttp.NewHandler(handler, cfg.Metrics.ServiceName)
	handler = cors.New(cors.Options{
		AllowedOrigins:   cfg.Cors.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	}).Handler(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновые задачи живут, пока жив ctx
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				limiter.Cleanup()
			}
		}
	})

	if cfg.Workers.Enabled {
		purger := workers.NewReviewPurgeWorker(
			reviewRepository,
			time.Duration(cfg.Workers.ReviewPurgeMinutes)*time.Minute,
			log,
		)
		g.Go(func() error {
			purger.Run(gctx)
			return nil
		})
		log.Info("Review purge worker started (every %d min)", cfg.Workers.ReviewPurgeMinutes)

		// Без архива перенос удалил бы бронирования безвозвратно
		if cfg.Mongo.URI != "" {
			archiver := workers.NewBookingArchiveWorker(bookingRepository, bookingArchive, cfg.Workers.ArchiveHour, log)
			g.Go(func() error {
				archiver.Run(gctx)
				return nil
			})
			log.Info("Booking archive worker started (daily at %02d:00)", cfg.Workers.ArchiveHour)
		} else {
			log.Warn("Mongo archive not configured, booking archive worker disabled")
		}
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)
	if cfg.Metrics.Enabled {
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

	if err := g.Wait(); err != nil {
		log.Error("Background worker stopped with error: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Tracing shutdown failed: %v", err)
	}

	log.Info("Server stopped gracefully")
}
