package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/aebalz/mindful-journey/docs"
	"github.com/aebalz/mindful-journey/internal/config"
	"github.com/aebalz/mindful-journey/internal/llm"
	"github.com/aebalz/mindful-journey/internal/llm/gemini"
	"github.com/aebalz/mindful-journey/internal/llm/openai"
	"github.com/aebalz/mindful-journey/internal/repository"
	"github.com/aebalz/mindful-journey/internal/service"
	"github.com/aebalz/mindful-journey/pkg/database"
	"github.com/aebalz/mindful-journey/pkg/logger"
)

// application is everything the commands share once configuration is loaded.
type application struct {
	cfg    *config.AppConfig
	log    zerolog.Logger
	moods  *service.MoodService
	chat   *service.ChatService
	ping   func(ctx context.Context) error
	closer func() error
}

func (a *application) Close() {
	if a.closer == nil {
		return
	}
	if err := a.closer(); err != nil {
		a.log.Warn().Err(err).Msg("error closing storage")
	}
}

func newApplication(c *cli.Context) (*application, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.AppEnv).With().Str("app", cfg.AppName).Logger()

	docs.SwaggerInfo.Host = cfg.SwaggerHost
	docs.SwaggerInfo.BasePath = cfg.SwaggerBasePath
	docs.SwaggerInfo.Schemes = cfg.SwaggerSchemes
	docs.SwaggerInfo.Title = cfg.AppName + " API"

	ctx := c.Context
	app := &application{cfg: cfg, log: log}

	store, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}

	app.moods = service.NewMoodService(store, log, service.WithLocation(cfg.Location()))
	app.moods.Load(ctx)

	provider := app.newProvider(ctx)
	app.chat = service.NewChatService(
		app.moods,
		llm.NewMoodAnalyst(provider, provider.Name(), log),
		llm.NewAffirmer(provider, provider.Name(), log),
		log,
	)
	return app, nil
}

// openStore connects the log store selected by STORAGE_DRIVER.
func (a *application) openStore(ctx context.Context) (repository.LogStore, error) {
	cfg := a.cfg
	switch cfg.StorageDriver {
	case config.StorageSQLite, config.StoragePostgres:
		db, err := database.ConnectDB(cfg, a.log)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateDB(db); err != nil {
			database.CloseDB(db)
			return nil, err
		}
		a.ping = func(context.Context) error { return database.PingDB(db) }
		a.closer = func() error { return database.CloseDB(db) }
		return repository.NewGormLogStore(db), nil

	case config.StorageRedis:
		client, err := database.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.ping = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		a.closer = client.Close
		a.log.Info().Str("addr", cfg.RedisAddr).Str("key", cfg.StorageKey).Msg("using redis log store")
		return repository.NewRedisLogStore(client, cfg.StorageKey), nil

	default:
		a.log.Info().Str("path", cfg.StoragePath).Msg("using file log store")
		return repository.NewFileLogStore(cfg.StoragePath), nil
	}
}

// newProvider builds the configured model backend wrapped in logging, retry,
// rate limiting and affirmation caching. A backend that cannot be built is
// replaced by one that always fails, so every answer is the fallback.
func (a *application) newProvider(ctx context.Context) llm.Provider {
	cfg := a.cfg

	var provider llm.Provider
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			provider = llm.Unavailable("openai:"+cfg.OpenAIModel, errors.New("OPENAI_API_KEY is not set"))
		} else {
			provider = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.LLMTimeout)
		}
	default:
		p, err := gemini.NewProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
		if err != nil {
			provider = llm.Unavailable("gemini:"+cfg.GeminiModel, err)
		} else {
			provider = p
		}
	}
	a.log.Info().Str("provider", provider.Name()).Msg("assistant backend configured")

	return llm.Wrap(provider,
		llm.CacheAffirmations(cfg.AffirmationCacheSize, cfg.AffirmationCacheTTL),
		llm.Logging(a.log),
		llm.Retry(cfg.LLMMaxRetries+1, 0),
		llm.RateLimit(cfg.LLMRequestsPerSecond, cfg.LLMBurst),
	)
}
