package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	financeapp "github.com/siteops/backend/internal/application/finance"
	identityapp "github.com/siteops/backend/internal/application/identity"
	masterdataapp "github.com/siteops/backend/internal/application/masterdata"
	procurementapp "github.com/siteops/backend/internal/application/procurement"
	reportapp "github.com/siteops/backend/internal/application/report"
	stockapp "github.com/siteops/backend/internal/application/stock"
	workforceapp "github.com/siteops/backend/internal/application/workforce"
	"github.com/siteops/backend/internal/infrastructure/auth"
	"github.com/siteops/backend/internal/infrastructure/cache"
	"github.com/siteops/backend/internal/infrastructure/config"
	"github.com/siteops/backend/internal/infrastructure/logger"
	"github.com/siteops/backend/internal/infrastructure/pdf"
	"github.com/siteops/backend/internal/infrastructure/persistence"
	"github.com/siteops/backend/internal/interfaces/http/handler"
	"github.com/siteops/backend/internal/interfaces/http/middleware"
	"github.com/siteops/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SiteOps Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Report cache is optional: reports fall back to live queries when
	// Redis is unavailable or caching is disabled.
	var reportCache reportapp.ReportCache
	if cfg.Report.CacheEnabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Error closing redis client", zap.Error(err))
				}
			}()
			reportCache = cache.NewRedisReportCache(redisClient)
			log.Info("Report cache enabled", zap.Duration("ttl", cfg.Report.CacheTTL))
		}
	}

	// PDF renderer for report exports
	pdfRenderer := pdf.NewChromeRenderer(pdf.Config{
		Timeout: cfg.Report.PDFTimeout,
		Logger:  log,
	})
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	// Repositories
	stateRepo := persistence.NewGormStateRepository(db.DB)
	cityRepo := persistence.NewGormCityRepository(db.DB)
	zoneRepo := persistence.NewGormZoneRepository(db.DB)
	siteRepo := persistence.NewGormSiteRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	itemCategoryRepo := persistence.NewGormItemCategoryRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	indentRepo := persistence.NewGormIndentRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	inwardBillRepo := persistence.NewGormInwardBillRepository(db.DB)
	siteStockRepo := persistence.NewGormSiteStockRepository(db.DB)
	consumptionRepo := persistence.NewGormDailyConsumptionRepository(db.DB)
	manpowerRepo := persistence.NewGormManpowerRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	boqRepo := persistence.NewGormBOQRepository(db.DB)
	workOrderRepo := persistence.NewGormWorkOrderRepository(db.DB)
	workOrderBillRepo := persistence.NewGormWorkOrderBillRepository(db.DB)
	cashbookRepo := persistence.NewGormCashbookRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	rentAgreementRepo := persistence.NewGormRentAgreementRepository(db.DB)
	rentPaymentRepo := persistence.NewGormRentPaymentRepository(db.DB)
	attendanceReportRepo := persistence.NewGormAttendanceReportRepository(db.DB)
	financeReportRepo := persistence.NewGormFinanceReportRepository(db.DB)
	stockReportRepo := persistence.NewGormStockReportRepository(db.DB)

	// Transaction scopes for flows that touch several aggregates at once
	procurementTxScope := persistence.NewGormProcurementTransactionScope(db.DB)
	stockTxScope := persistence.NewGormStockTransactionScope(db.DB)
	workforceTxScope := persistence.NewGormWorkforceTransactionScope(db.DB)

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	passwordHasher := auth.NewBcryptHasher()
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, passwordHasher, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, siteRepo, passwordHasher)
	roleService := identityapp.NewRoleService(roleRepo, userRepo)

	// Master data services
	geoService := masterdataapp.NewGeoService(stateRepo, cityRepo)
	zoneService := masterdataapp.NewZoneService(zoneRepo, siteRepo)
	siteService := masterdataapp.NewSiteService(siteRepo, zoneRepo, cityRepo)
	vendorService := masterdataapp.NewVendorService(vendorRepo)
	itemCategoryService := masterdataapp.NewItemCategoryService(itemCategoryRepo, itemRepo)
	itemService := masterdataapp.NewItemService(itemRepo, itemCategoryRepo)

	// Procurement services
	indentService := procurementapp.NewIndentService(indentRepo, siteRepo, itemRepo)
	purchaseOrderService := procurementapp.NewPurchaseOrderService(purchaseOrderRepo, indentRepo, vendorRepo, itemRepo, procurementTxScope)
	inwardService := procurementapp.NewInwardService(inwardBillRepo, purchaseOrderRepo, procurementTxScope)

	// Workforce services
	manpowerService := workforceapp.NewManpowerService(manpowerRepo, siteRepo, vendorRepo)
	attendanceService := workforceapp.NewAttendanceService(attendanceRepo, manpowerRepo, workforceTxScope)
	transferService := workforceapp.NewTransferService(transferRepo, manpowerRepo, siteRepo, workforceTxScope)

	// Stock services
	stockService := stockapp.NewStockService(siteStockRepo)
	consumptionService := stockapp.NewConsumptionService(consumptionRepo, siteStockRepo, siteRepo, itemRepo, stockTxScope)

	// Finance services
	boqService := financeapp.NewBOQService(boqRepo, siteRepo)
	workOrderService := financeapp.NewWorkOrderService(workOrderRepo, boqRepo, vendorRepo)
	workOrderBillService := financeapp.NewWorkOrderBillService(workOrderBillRepo, workOrderRepo)
	cashbookService := financeapp.NewCashbookService(cashbookRepo, voucherRepo, siteRepo)
	rentService := financeapp.NewRentService(rentAgreementRepo, rentPaymentRepo, siteRepo)

	// Report services
	reportService := reportapp.NewReportService(
		attendanceReportRepo, financeReportRepo, stockReportRepo,
		siteRepo, cashbookRepo, workOrderRepo,
		reportCache, cfg.Report.CacheTTL, log,
	)
	exportService := reportapp.NewExportService(reportService, pdfRenderer, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first: request ID, panic recovery,
	// request logging, security headers, CORS, body limit, rate limits,
	// then JWT auth for everything not on the skip list.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Login and refresh get a tighter, IP-keyed limit to slow down
	// credential stuffing.
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		limit := middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return c.ClientIP()
		})
		engine.Use(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/") {
				limit(c)
				return
			}
			c.Next()
		})
	}

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	// Route registration
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db.DB, version)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewRoleHandler(roleService)).
		Register(handler.NewGeoHandler(geoService)).
		Register(handler.NewZoneHandler(zoneService)).
		Register(handler.NewSiteHandler(siteService)).
		Register(handler.NewVendorHandler(vendorService)).
		Register(handler.NewItemHandler(itemCategoryService, itemService)).
		Register(handler.NewIndentHandler(indentService)).
		Register(handler.NewPurchaseOrderHandler(purchaseOrderService)).
		Register(handler.NewInwardHandler(inwardService)).
		Register(handler.NewManpowerHandler(manpowerService, transferService)).
		Register(handler.NewAttendanceHandler(attendanceService)).
		Register(handler.NewStockHandler(stockService, consumptionService)).
		Register(handler.NewBOQHandler(boqService)).
		Register(handler.NewWorkOrderHandler(workOrderService, workOrderBillService)).
		Register(handler.NewCashbookHandler(cashbookService)).
		Register(handler.NewRentHandler(rentService)).
		Register(handler.NewReportHandler(reportService, exportService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
