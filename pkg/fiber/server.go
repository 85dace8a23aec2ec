package fiber

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiber "github.com/swaggo/fiber-swagger"

	_ "github.com/aebalz/mindful-journey/docs"
	"github.com/aebalz/mindful-journey/internal/config"
	"github.com/aebalz/mindful-journey/internal/handler"
	"github.com/aebalz/mindful-journey/internal/middleware"
)

// NewFiberServer creates and configures a new Fiber application.
func NewFiberServer(cfg *config.AppConfig, h *handler.Handlers, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           cfg.ServerReadTimeout,
		WriteTimeout:          cfg.ServerWriteTimeout,
		IdleTimeout:           cfg.ServerIdleTimeout,
		ErrorHandler:          errorHandler(log),
		DisableStartupMessage: cfg.AppEnv == "production",
	})

	app.Use(middleware.FiberRecover(log))
	app.Use(middleware.FiberRequestID())
	app.Use(middleware.FiberLogger(log))
	app.Use(middleware.FiberCORS(cfg.CorsAllowedOrigins))
	app.Use(middleware.MetricsMiddlewareFiber())

	app.Get("/swagger/*", swaggoFiber.WrapHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", h.Health.CheckHealthFiber)

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	api := app.Group("/api/v1", middleware.RateLimiterFiber(limiter))
	RegisterRoutes(api, h)

	return app
}

// RegisterRoutes mounts the API on api.
func RegisterRoutes(api fiber.Router, h *handler.Handlers) {
	api.Get("/logs", h.Moods.ListLogsFiber)
	api.Post("/logs", h.Moods.CheckInFiber)
	api.Get("/logs/today", h.Moods.TodayFiber)
	api.Get("/streak", h.Moods.StreakFiber)
	api.Get("/history", h.Moods.HistoryFiber)
	api.Get("/summary", h.Moods.SummaryFiber)
	api.Get("/export", h.Moods.ExportFiber)

	api.Post("/chat", h.Chat.ChatFiber)
	api.Post("/analyze", h.Chat.AnalyzeFiber)
	api.Post("/affirmations", h.Chat.AffirmationFiber)
}

// errorHandler answers errors no handler turned into a response.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", ctx.Path()).Msg("fiber error")
		}

		return ctx.Status(code).JSON(handler.ErrorResponse{Error: message, Code: errorCode(code)})
	}
}

func errorCode(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return handler.CodeNotFound
	case status == fiber.StatusBadRequest || status == fiber.StatusUnprocessableEntity:
		return handler.CodeValidation
	case status >= fiber.StatusInternalServerError:
		return handler.CodeInternal
	default:
		return fmt.Sprintf("http_%d", status)
	}
}

// StartFiberServer starts the Fiber server and blocks until it stops.
func StartFiberServer(app *fiber.App, cfg *config.AppConfig, log zerolog.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
	log.Info().Str("addr", addr).Msg("starting fiber server")
	return app.Listen(addr)
}
