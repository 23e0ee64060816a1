package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/handler"
	"bookstore/internal/infra/broker"
	"bookstore/internal/infra/cache"
	"bookstore/internal/infra/db"
	infraRepo "bookstore/internal/infra/repository"
	"bookstore/internal/observability"
	"bookstore/internal/server"
	"bookstore/internal/token"
	"bookstore/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//金額はJSONで数値として返す
	decimal.MarshalJSONWithoutQuotes = true

	//トレース（JAEGER_ENDPOINTがあるときだけ）
	if cfg.JaegerEndpoint != "" {
		tp, err := observability.InitTracer("bookstore-api", cfg.JaegerEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(sctx)
		}()
	}

	//DB接続
	gormDB, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	bookRepo := infraRepo.NewBookGormRepository(gormDB)
	authorRepo := infraRepo.NewAuthorGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	clientRepo := infraRepo.NewClientGormRepository(gormDB)
	supplierRepo := infraRepo.NewSupplierGormRepository(gormDB)
	saleRepo := infraRepo.NewSaleGormRepository(gormDB)
	saleItemRepo := infraRepo.NewSaleItemGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	dashboardRepo := infraRepo.NewDashboardSQLXRepository(sqlDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//キャッシュ（REDIS_ADDRがなければ無効）
	var dashCache usecase.Cache = cache.Nop{}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer func() { _ = rc.Close() }()
		dashCache = rc
	}

	//販売イベント（KAFKA_BROKERSがなければ送らない）
	var publisher usecase.SaleEventPublisher = broker.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		p := broker.NewSalePublisher(cfg.KafkaBrokers, cfg.KafkaTopicSales)
		defer func() { _ = p.Close() }()
		publisher = p
	}

	//usecaseに渡す部品
	clock := usecase.SystemClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, verifier, tokens, clock, logger)
	userUC := usecase.NewUserUsecase(userRepo, auditRepo, hasher, clock, logger)
	bookUC := usecase.NewBookUsecase(bookRepo, saleItemRepo, inventoryRepo, auditRepo, clock, logger)
	authorUC := usecase.NewAuthorUsecase(authorRepo, bookRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, bookRepo)
	clientUC := usecase.NewClientUsecase(clientRepo, saleRepo)
	supplierUC := usecase.NewSupplierUsecase(supplierRepo)
	saleUC := usecase.NewSaleUsecase(txManager, publisher, dashCache, clock, logger)
	inventoryUC := usecase.NewInventoryUsecase(txManager, dashCache, clock, logger)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo, dashCache, cfg.DashboardCacheTTL, clock, logger)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//初回の管理者
	if cfg.AdminEmail != "" {
		if err := userUC.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}
	}

	//Handler生成
	e := server.New(server.Deps{
		Config: cfg,
		Logger: logger,
		Tokens: tokens,
		Users:  userRepo,
		Health: sqlDB.PingContext,
		Handler: server.Handlers{
			Auth:      handler.NewAuthHandler(authUC),
			Users:     handler.NewUserHandler(userUC),
			Books:     handler.NewBookHandler(bookUC),
			Catalog:   handler.NewCatalogHandler(authorUC, categoryUC),
			Clients:   handler.NewClientHandler(clientUC),
			Suppliers: handler.NewSupplierHandler(supplierUC),
			Sales:     handler.NewSaleHandler(saleUC),
			Inventory: handler.NewInventoryHandler(inventoryUC),
			Dashboard: handler.NewDashboardHandler(dashboardUC),
			Audit:     handler.NewAuditHandler(auditUC),
		},
	})

	//Server起動
	return server.Run(ctx, e, ":"+cfg.Port, logger)
}
