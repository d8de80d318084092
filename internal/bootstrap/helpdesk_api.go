// Package bootstrap wires configuration, adapters, and services into the
// running API server.
package bootstrap

import (
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"helpdesk_server/adapter/in/http"
	"helpdesk_server/config"
	"helpdesk_server/infra/middleware"
	"helpdesk_server/pkg/logger"
)

func NewAPI(cfg *config.Config) (*fiber.App, func(), error) {
	// Initialize logger
	logLevel := logger.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = logger.LevelDebug
	}
	logger.Init(logger.Config{
		Level:   logLevel,
		Service: "helpdesk-api",
	})

	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	deps, cleanup, err := NewDependencies(cfg, zlog)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize dependencies")
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		DisableStartupMessage: cfg.IsProduction(),
		Prefork:               false,
		StrictRouting:         false,
		CaseSensitive:         false,

		ReadBufferSize:  16384,
		WriteBufferSize: 16384,

		// go-json: 2-3x faster serialization than encoding/json
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit: 1 * 1024 * 1024, // 1MB

		ServerHeader:       "",
		DisableDefaultDate: true,
		DisableKeepalive:   false,
	})

	// Global middleware stack (order matters)
	app.Use(middleware.Recover())
	app.Use(middleware.RequestID())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.ValidateContentType())
	app.Use(middleware.RequestLogger())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// CORS - AllowCredentials:true requires explicit origins (not "*")
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	allowCredentials := true
	if allowOrigins == "" || allowOrigins == "*" {
		if cfg.IsProduction() {
			allowOrigins = ""
			allowCredentials = false
		} else {
			allowOrigins = "http://localhost:3000,http://localhost:5173"
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		ExposeHeaders:    "X-Request-ID",
		AllowCredentials: allowCredentials,
		MaxAge:           86400,
	}))

	// Health check (no auth required)
	healthHandler := http.NewHealthHandler(deps.MongoDB, deps.Redis)
	healthHandler.Register(app)

	// Public API routes: ticket creation, reads, chat, ad-hoc analysis
	rateLimiter := middleware.NewRateLimiter(120, time.Minute)
	api := app.Group("/api/v1", rateLimiter.Handler())

	// Admin routes: ticket mutation and the event stream
	admin := app.Group("/api/v1/admin", middleware.AdminAuth(cfg.JWTSecret))

	ticketHandler := http.NewTicketHandler(deps.TicketService)
	ticketHandler.Register(api, admin)

	chatHandler := http.NewChatHandler(deps.ChatService)
	chatHandler.Register(api)

	analysisHandler := http.NewAnalysisHandler(deps.AnalysisService)
	analysisHandler.Register(api)

	sseHandler := http.NewSSEHandler(deps.RealtimeAdapter, zlog)
	sseHandler.Register(admin)

	// Analysis metrics snapshot for the admin dashboard
	admin.Get("/metrics/analysis", func(c *fiber.Ctx) error {
		return c.JSON(deps.AnalysisMetrics.Snapshot())
	})

	logger.Info("API server initialized successfully")

	return app, cleanup, nil
}
