package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/csemotors/dealership/internal/api/handler"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/api/session"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/service"
	"github.com/csemotors/dealership/internal/infrastructure/config"
	mongodb "github.com/csemotors/dealership/internal/infrastructure/db/mongo"
	redisdb "github.com/csemotors/dealership/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.New()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("dealership"))

	// --- Dependencies ---
	issuer, err := service.NewTokenIssuer(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	accountRepo := mongodb.NewAccountRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	guard := redisdb.NewLoginGuard(rdb)

	accountService := service.NewAccountService(accountRepo, issuer, guard, cfg.SessionTTL)
	inventoryService := service.NewInventoryService(inventoryRepo)

	cookies := session.NewCookieManager(!cfg.IsDevelopment(), cfg.SessionTTL)
	nav := render.NewNavProvider(inventoryService, log)

	accountHandler := handler.NewAccountHandler(accountService, cookies, nav, log)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, nav, log)
	homeHandler := handler.NewHomeHandler(nav)

	e.Use(middleware.Identify(issuer))
	requireAuth := middleware.RequireAuth(issuer, cookies)

	// --- Pages ---
	e.GET("/", homeHandler.Home)

	acct := e.Group("/account")
	acct.GET("/login", accountHandler.ShowLogin)
	acct.POST("/login", accountHandler.Login)
	acct.GET("/register", accountHandler.ShowRegister)
	acct.POST("/register", accountHandler.Register)
	acct.GET("/logout", accountHandler.Logout)
	acct.GET("/", accountHandler.ShowManagement, requireAuth)
	acct.GET("/update", accountHandler.ShowUpdate, requireAuth)
	acct.POST("/update", accountHandler.Update, requireAuth)

	inv := e.Group("/inv")
	inv.GET("/type/:classificationId", inventoryHandler.ByClassification)
	inv.GET("/detail/:invId", inventoryHandler.Detail)
	inv.GET("/manage", inventoryHandler.Manage, requireAuth,
		middleware.RBAC(domain.AccountTypeEmployee, domain.AccountTypeAdmin))
	inv.GET("/trigger-error", inventoryHandler.TriggerError)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Static assets ---
	e.Static("/public", "web/static")

	return e, nil
}
