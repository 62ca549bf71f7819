package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cse-motors/dealership/internal/api/assets"
	"github.com/cse-motors/dealership/internal/api/handler"
	"github.com/cse-motors/dealership/internal/api/middleware"
	"github.com/cse-motors/dealership/internal/api/view"
	"github.com/cse-motors/dealership/internal/core/service"
	"github.com/cse-motors/dealership/internal/infrastructure/config"
	mongodb "github.com/cse-motors/dealership/internal/infrastructure/db/mongo"
	redisdb "github.com/cse-motors/dealership/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dealership"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	accountService := service.NewAccountService(accountRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, accountRepo)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	pages := handler.NewPageBuilder(inventoryService, log)
	validate := handler.NewFormValidator()

	e.HTTPErrorHandler = NewHTTPErrorHandler(pages, log)

	// Sessions before identity: the identity middleware both reads and
	// resyncs the session record.
	e.Use(middleware.Sessions(sessionStore))
	e.Use(middleware.Identity(tokenService))

	baseHandler := handler.NewBaseHandler(pages)
	accountHandler := handler.NewAccountHandler(accountService, tokenService, tokenService.TTL(), pages, validate, log)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, pages, validate, log)
	searchHandler := handler.NewSearchHandler(inventoryService, pages)
	reportsHandler := handler.NewReportsHandler(inventoryService, pages, log)

	// --- Static assets ---
	e.StaticFS("/css", echo.MustSubFS(assets.FS, "css"))
	e.StaticFS("/js", echo.MustSubFS(assets.FS, "js"))

	// --- Public routes ---
	e.GET("/", baseHandler.Home)
	e.GET("/error/trigger", baseHandler.TriggerError)
	e.GET("/search", searchHandler.BuildSearch)
	e.POST("/search", searchHandler.Search)
	e.GET("/reports", reportsHandler.Dashboard)

	// --- Account routes ---
	account := e.Group("/account")
	account.GET("/login", accountHandler.BuildLogin)
	account.POST("/login", accountHandler.Login)
	account.GET("/register", accountHandler.BuildRegister)
	account.POST("/register", accountHandler.Register)
	account.GET("/", accountHandler.Management, middleware.RequireLogin)
	account.GET("/update", accountHandler.BuildUpdate, middleware.RequireLogin)
	account.GET("/update/:account_id", accountHandler.BuildUpdate, middleware.RequireLogin)
	account.POST("/update", accountHandler.Update, middleware.RequireLogin)
	account.POST("/password", accountHandler.ChangePassword, middleware.RequireLogin)
	account.GET("/logout", accountHandler.Logout, middleware.RequireLogin)

	// --- Inventory routes ---
	inv := e.Group("/inv")
	inv.GET("/type/:classification_id", inventoryHandler.ByClassification)
	inv.GET("/detail/:inv_id", inventoryHandler.Detail)
	inv.GET("/getInventory/:classification_id", inventoryHandler.InventoryJSON)
	inv.GET("/", inventoryHandler.Management, middleware.RequireStaff)
	inv.GET("/add-classification", inventoryHandler.BuildAddClassification, middleware.RequireStaff)
	inv.POST("/add-classification", inventoryHandler.AddClassification, middleware.RequireStaff)
	inv.GET("/add-inventory", inventoryHandler.BuildAddInventory, middleware.RequireStaff)
	inv.POST("/add-inventory", inventoryHandler.AddInventory, middleware.RequireStaff)
	inv.GET("/edit/:inv_id", inventoryHandler.BuildEdit, middleware.RequireStaff)
	inv.POST("/update", inventoryHandler.Update, middleware.RequireStaff)
	inv.GET("/delete/:inv_id", inventoryHandler.BuildDelete, middleware.RequireStaff)
	inv.POST("/delete", inventoryHandler.Delete, middleware.RequireStaff)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
