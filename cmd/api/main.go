package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "farmfund-backend/internal/adapter/http"
	"farmfund-backend/internal/adapter/middleware"
	"farmfund-backend/internal/adapter/repository/gormrepo"
	"farmfund-backend/internal/config"
	"farmfund-backend/internal/infrastructure/cache"
	"farmfund-backend/internal/infrastructure/db"
	"farmfund-backend/internal/usecase/approval"
	"farmfund-backend/internal/usecase/funding"
	"farmfund-backend/internal/usecase/investor"
	"farmfund-backend/internal/usecase/loan"
	"farmfund-backend/internal/usecase/marketplace"
	"farmfund-backend/internal/usecase/settlement"
	"farmfund-backend/internal/usecase/stats"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	gormLevel := logger.Warn
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gormLevel = logger.Info
	}
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), gormLevel)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.Fatal().Err(err).Msg("auto-migrate failed")
		}
		log.Info().Msg("schema migrated")
	}

	rdb, err := cache.OpenRedis(context.Background(), cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	policy := cfg.Policy
	pages := cache.NewPageCache(rdb, "marketplace", policy.MarketplaceCacheTTL)

	// repositories
	uow := gormrepo.NewGormUoW(gdb)
	loanRepo := gormrepo.NewLoanRepository(gdb)
	investorRepo := gormrepo.NewInvestorRepository(gdb)
	investmentRepo := gormrepo.NewInvestmentRepository(gdb)
	transactionRepo := gormrepo.NewTransactionRepository(gdb)

	// usecases
	statsUC := stats.NewUsecase(uow)
	loanUC := loan.NewUsecase(loanRepo, policy.DefaultInterestRate, policy.RecentLoansLimit)
	approvalUC := approval.NewUsecase(uow).WithMarketplace(pages)
	investorUC := investor.NewUsecase(investorRepo, investmentRepo, transactionRepo, policy.TransactionsLimit)
	marketUC := marketplace.NewUsecase(loanRepo, pages, policy.MarketplaceLimit, policy.MinInvestment)
	fundingUC := funding.NewUsecase(uow, statsUC, pages, policy.MinInvestment)
	settlementUC := settlement.NewUsecase(uow, statsUC)

	investLimiter := middleware.NewRateLimiter(cfg.InvestRatePerMinute, cfg.InvestBurst)
	defer investLimiter.Stop()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
			"Ax-Request-Id", "Ax-Request-At",
		},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", middleware.HeaderReplay},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))
	e.Use(middleware.RequestLog())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit("1M"))

	httpadp.Routes{
		Health:         httpadp.NewHandler("farmfund-api"),
		Loans:          httpadp.NewLoanHandler(loanUC),
		Approvals:      httpadp.NewApprovalHandler(approvalUC),
		Investors:      httpadp.NewInvestorHandler(investorUC, marketUC, fundingUC),
		Settlement:     httpadp.NewSettlementHandler(settlementUC),
		JWTSecret:      cfg.JWTSecret,
		Redis:          rdb,
		IdempotencyTTL: cfg.IdempotencyTTL(),
		InvestLimiter:  investLimiter,
	}.Register(e)

	go func() {
		log.Info().Str("port", cfg.AppPort).Str("env", cfg.AppEnv).Msg("starting server")
		if err := e.Start(":" + cfg.AppPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
