package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/handler"
	"bookstore/internal/middleware"
	"bookstore/internal/repository"
	"bookstore/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// /api配下のハンドラ一式
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Books     *handler.BookHandler
	Catalog   *handler.CatalogHandler
	Clients   *handler.ClientHandler
	Suppliers *handler.SupplierHandler
	Sales     *handler.SaleHandler
	Inventory *handler.InventoryHandler
	Dashboard *handler.DashboardHandler
	Audit     *handler.AuditHandler
}

type Deps struct {
	Config  config.Config
	Logger  *zap.Logger
	Tokens  middleware.TokenParser
	Users   repository.UserRepository
	Health  func(ctx context.Context) error // nilなら常にok
	Handler Handlers
}

// New はecho本体を組み立てる（起動はしない）
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{d.Config.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echomw.BodyLimit("1M"))

	e.GET("/healthz", healthz(d.Health))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	//公開（ログインのみ）
	public := e.Group("/api")
	d.Handler.Auth.RegisterPublicRoutes(public)

	//JWT必須 + token_version一致 + ロール表
	api := e.Group("/api",
		middleware.AuthJWT(d.Tokens),
		middleware.TokenVersionGuard(d.Users),
		middleware.RoleGuard(NewPolicy()),
	)
	d.Handler.Auth.RegisterRoutes(api)
	d.Handler.Users.RegisterRoutes(api)
	d.Handler.Books.RegisterRoutes(api)
	d.Handler.Catalog.RegisterRoutes(api)
	d.Handler.Clients.RegisterRoutes(api)
	d.Handler.Suppliers.RegisterRoutes(api)
	d.Handler.Sales.RegisterRoutes(api)
	d.Handler.Inventory.RegisterRoutes(api)
	d.Handler.Dashboard.RegisterRoutes(api)
	d.Handler.Audit.RegisterRoutes(api)

	return e
}

func healthz(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.JSON(http.StatusServiceUnavailable, handler.ErrorResponse{Error: "database unavailable"})
			}
		}
		return c.JSON(http.StatusOK, handler.MessageResponse{Message: "ok"})
	}
}

// Run はctxがキャンセルされるまで動き、その後graceful shutdownする
func Run(ctx context.Context, e *echo.Echo, addr string, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	//処理中の販売txは最後まで走らせる
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	logger.Info("http server shutting down")
	return e.Shutdown(shutdownCtx)
}
