package router

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	assetsvc "trykey-dashboard/internal/application/assets"
	authsvc "trykey-dashboard/internal/application/auth"
	controlsvc "trykey-dashboard/internal/application/control"
	paysvc "trykey-dashboard/internal/application/payments"
	"trykey-dashboard/internal/application/pending"
	roomsvc "trykey-dashboard/internal/application/rooms"
	txsvc "trykey-dashboard/internal/application/transactions"
	"trykey-dashboard/internal/config"
	"trykey-dashboard/internal/infrastructure/database"
	assethandler "trykey-dashboard/internal/interfaces/handlers/assets"
	authhandler "trykey-dashboard/internal/interfaces/handlers/auth"
	controlhandler "trykey-dashboard/internal/interfaces/handlers/control"
	healthhandler "trykey-dashboard/internal/interfaces/handlers/health"
	payhandler "trykey-dashboard/internal/interfaces/handlers/payments"
	roomhandler "trykey-dashboard/internal/interfaces/handlers/rooms"
	txhandler "trykey-dashboard/internal/interfaces/handlers/transactions"
	"trykey-dashboard/internal/middleware"
	"trykey-dashboard/internal/trykey"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp wires the full application: middleware chain, health endpoints,
// auth, and the asset dashboard routes. The returned poller shares the
// pending-mutation registry with the control and payment services, so a
// background refresh never races an in-flight command.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, *assetsvc.Poller, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, redisClient, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	rdb := redisClient
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	app.Use(func(c *fiber.Ctx) error {
		user := c.Locals("user")
		if user == nil {
			c.Locals("user", nil)
		}
		return c.Next()
	})

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             nil,
		PlatformURL:    cfg.TrykeyAPIURL,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var errDB error
		db, errDB = database.Open(cfg.DatabaseURL)
		if errDB != nil {
			return nil, nil, nil, nil, errDB
		}
		hh.DB = &gormDBPinger{db: db}
	}

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}

	var userFinder authsvc.UserFinder
	if db != nil {
		userFinder = &authsvc.GormUserFinder{DB: db}
	}
	ah := &authhandler.Handlers{
		UserFinder: userFinder,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)

	client := trykey.NewClient(cfg.TrykeyAPIURL, cfg.TrykeyAPIToken)
	reg := pending.NewRegistry()

	rs := &roomsvc.Service{Client: client, Rdb: rdb}
	ts := &txsvc.Service{Client: client, Rdb: rdb}
	as := &assetsvc.Service{Client: client, Rdb: rdb}
	cs := &controlsvc.Service{Client: client, Pending: reg, Rooms: rs}
	ps := &paysvc.Service{
		Client:      client,
		Pending:     reg,
		Ledger:      ts,
		Amount:      cfg.PaymentAmount,
		RedirectURL: cfg.PaymentRedirectURL,
	}

	assetH := &assethandler.Handlers{Service: as}
	roomH := &roomhandler.Handlers{Service: rs}
	txH := &txhandler.Handlers{Service: ts}
	controlH := &controlhandler.Handlers{Service: cs, Rooms: rs}
	payH := &payhandler.Handlers{Service: ps, Rooms: rs}

	ag := app.Group("/api/v1/assets", middleware.RequireAuth())
	ag.Get("/", assetH.GetAssets)
	ag.Get("/:asset_number", assetH.GetAsset)
	ag.Get("/:asset_number/status", assetH.GetStatus)
	ag.Get("/:asset_number/rooms", roomH.GetRooms)
	ag.Get("/:asset_number/transactions", txH.GetTransactions)
	ag.Post("/:asset_number/rooms/:room_number/control", controlH.SendCommand)
	ag.Post("/:asset_number/rooms/:room_number/payment", payH.InitPayment)

	poller := &assetsvc.Poller{
		Assets:   as,
		Pending:  reg,
		Interval: cfg.StatusPollInterval,
	}

	return app, db, rdb, poller, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
