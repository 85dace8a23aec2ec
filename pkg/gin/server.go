package gin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/aebalz/mindful-journey/docs"
	"github.com/aebalz/mindful-journey/internal/config"
	"github.com/aebalz/mindful-journey/internal/handler"
	"github.com/aebalz/mindful-journey/internal/middleware"
)

// NewGinServer creates and configures a new Gin application.
func NewGinServer(cfg *config.AppConfig, h *handler.Handlers, log zerolog.Logger) *gin.Engine {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(middleware.GinRecovery(log))
	router.Use(middleware.GinRequestID())
	router.Use(middleware.GinLogger(log))
	router.Use(middleware.GinCORS(cfg.CorsAllowedOrigins))
	router.Use(middleware.MetricsMiddlewareGin())

	url := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler, url))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.Health.CheckHealthGin)

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiterGin(middleware.NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)))
	RegisterRoutes(api, h)

	return router
}

// RegisterRoutes mounts the API on api.
func RegisterRoutes(api gin.IRoutes, h *handler.Handlers) {
	api.GET("/logs", h.Moods.ListLogsGin)
	api.POST("/logs", h.Moods.CheckInGin)
	api.GET("/logs/today", h.Moods.TodayGin)
	api.GET("/streak", h.Moods.StreakGin)
	api.GET("/history", h.Moods.HistoryGin)
	api.GET("/summary", h.Moods.SummaryGin)
	api.GET("/export", h.Moods.ExportGin)

	api.POST("/chat", h.Chat.ChatGin)
	api.POST("/analyze", h.Chat.AnalyzeGin)
	api.POST("/affirmations", h.Chat.AffirmationGin)
}

// StartGinServer starts the Gin server. Listen failures arrive on the returned channel.
func StartGinServer(router *gin.Engine, cfg *config.AppConfig, log zerolog.Logger) (*http.Server, <-chan error) {
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	log.Info().Str("addr", addr).Msg("starting gin server")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return srv, errCh
}

// ShutdownGinServer gracefully shuts down the Gin server.
func ShutdownGinServer(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("gin server forced to shutdown: %w", err)
	}
	return nil
}
