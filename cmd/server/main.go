package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	cargoapp "github.com/travelerp/backend/internal/application/cargo"
	financeapp "github.com/travelerp/backend/internal/application/finance"
	hajumrahapp "github.com/travelerp/backend/internal/application/hajumrah"
	partnerapp "github.com/travelerp/backend/internal/application/partner"
	reportapp "github.com/travelerp/backend/internal/application/report"
	appshared "github.com/travelerp/backend/internal/application/shared"
	ticketingapp "github.com/travelerp/backend/internal/application/ticketing"
	"github.com/travelerp/backend/internal/infrastructure/auth"
	"github.com/travelerp/backend/internal/infrastructure/authz"
	"github.com/travelerp/backend/internal/infrastructure/cache"
	"github.com/travelerp/backend/internal/infrastructure/config"
	"github.com/travelerp/backend/internal/infrastructure/event"
	"github.com/travelerp/backend/internal/infrastructure/logger"
	"github.com/travelerp/backend/internal/infrastructure/persistence"
	"github.com/travelerp/backend/internal/infrastructure/telemetry"
	"github.com/travelerp/backend/internal/interfaces/http/handler"
	"github.com/travelerp/backend/internal/interfaces/http/middleware"
	"github.com/travelerp/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting travel back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	metrics := telemetry.NewMetrics()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog,
		telemetry.NewDBTracingPlugin(cfg.Telemetry, metrics, log))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.SQLDB()
	if err != nil {
		log.Fatal("Failed to get database pool", zap.Error(err))
	}
	if err := metrics.RegisterDB(sqlDB, cfg.Database.DBName); err != nil {
		log.Warn("Failed to register pool metrics", zap.Error(err))
	}
	log.Info("Database connected successfully")

	appCache, closeCache := cache.New(ctx, cfg.Redis, log)

	// Handlers run after commit; a failing subscriber never undoes a write.
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(event.NewActivityHandler(metrics, log))

	enforcer, err := authz.NewEnforcer(db.DB, cfg.Authz)
	if err != nil {
		log.Fatal("Failed to initialize authorization", zap.Error(err))
	}

	deps := appshared.Deps{
		Tx:          persistence.NewGormTransactionScope(db.DB),
		Repos:       persistence.NewRepositories(db.DB),
		Authz:       authz.NewCasbinAuthorizer(enforcer, log),
		Publisher:   bus,
		Cache:       appCache,
		Logger:      log,
		EditTimeout: cfg.Booking.EditTimeout,
	}.WithDefaults()

	// Services
	customerService := partnerapp.NewCustomerService(deps)
	ticketService := ticketingapp.NewTicketService(deps)
	visaService := ticketingapp.NewVisaService(deps)
	campaignService := hajumrahapp.NewCampaignService(deps)
	bookingService := hajumrahapp.NewBookingService(deps)
	branchService := cargoapp.NewBranchService(deps)
	shipmentService := cargoapp.NewShipmentService(deps).WithTrackingTTL(cfg.Currency.TrackingCacheTTL)
	paymentService := financeapp.NewPaymentService(deps)
	payableService := financeapp.NewPayableService(deps)
	expenseService := financeapp.NewExpenseService(deps)
	currencyService := financeapp.NewCurrencyService(deps, cfg.Currency.RateCacheTTL)
	reportService := reportapp.NewReportService(deps, currencyService)

	handlers := router.Handlers{
		Customer: handler.NewCustomerHandler(customerService),
		Ticket:   handler.NewTicketHandler(ticketService),
		Visa:     handler.NewVisaHandler(visaService),
		Campaign: handler.NewCampaignHandler(campaignService),
		Booking:  handler.NewBookingHandler(bookingService),
		Branch:   handler.NewBranchHandler(branchService),
		Shipment: handler.NewShipmentHandler(shipmentService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Payable:  handler.NewPayableHandler(payableService),
		Expense:  handler.NewExpenseHandler(expenseService),
		Currency: handler.NewCurrencyHandler(currencyService),
		Report:   handler.NewReportHandler(reportService),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request id must exist before the logger and the
	// tracer read it, and CORS must answer preflights before the body limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.HTTPMetrics(metrics))
	engine.Use(middleware.Secure(middleware.SecurityConfigForEnv(cfg.App.Env)))
	engine.Use(middleware.CORS(middleware.CORSConfigFromHTTP(cfg.HTTP, cfg.Tenant.HeaderName)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", handler.NewHealthHandler(sqlDB).Health)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	tenants := persistence.NewGormTenantRepository(db.DB)
	jwtService := auth.NewJWTService(cfg.JWT)

	publicLimiter := middleware.NewRateLimiter(cfg.HTTP.PublicRateLimit, cfg.HTTP.PublicRateWindow)
	defer publicLimiter.Stop()

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAuth(
			middleware.JWTAuth(middleware.JWTMiddlewareConfig{
				Validator: jwtService,
				Logger:    log,
			}),
			middleware.Tenant(middleware.TenantMiddlewareConfig{
				Resolver:   tenants,
				HeaderName: cfg.Tenant.HeaderName,
				BaseDomain: cfg.Tenant.BaseDomain,
				Required:   true,
				Logger:     log,
			}),
			middleware.SpanEnricher(),
		),
	)
	r.RegisterPublic(router.PublicRoutes(handlers,
		middleware.RateLimit(publicLimiter),
		middleware.Tenant(middleware.TenantMiddlewareConfig{
			Resolver:   tenants,
			HeaderName: cfg.Tenant.HeaderName,
			BaseDomain: cfg.Tenant.BaseDomain,
			Logger:     log,
		}),
	)...)
	r.Register(router.ProtectedRoutes(handlers)...)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}
	if err := closeCache(); err != nil {
		log.Warn("Failed to close cache", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
