package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// LLM providers accepted by LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	ServerPort         int
	ServerHost         string
	ServerFramework    string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	AppEnv             string
	AppName            string
	AppTimezone        string
	LogLevel           string
	CorsAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	SwaggerHost        string
	SwaggerBasePath    string
	SwaggerSchemes     []string

	StorageDriver string
	StoragePath   string
	StorageKey    string
	SQLitePath    string
	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBTimezone    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LLMProvider          string
	GeminiAPIKey         string
	GeminiModel          string
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIBaseURL        string
	LLMTimeout           time.Duration
	LLMMaxRetries        int
	LLMRequestsPerSecond float64
	LLMBurst             int
	AffirmationCacheSize int
	AffirmationCacheTTL  time.Duration
}

// LoadConfig loads configuration from .env file or environment variables.
func LoadConfig(envFile ...string) (*AppConfig, error) {
	if len(envFile) > 0 && envFile[0] != "" {
		if _, err := os.Stat(envFile[0]); err == nil {
			if err := godotenv.Load(envFile[0]); err != nil {
				log.Printf("Warning: Could not load .env file: %v. Using environment variables or defaults.", err)
			}
		} else {
			log.Printf("Warning: Specified .env file %s not found. Using environment variables or defaults.", envFile[0])
		}
	} else if _, err := os.Stat("config.env"); err == nil {
		if err := godotenv.Load("config.env"); err != nil {
			log.Printf("Warning: Could not load default config.env file: %v. Using environment variables or defaults.", err)
		}
	}

	cfg := &AppConfig{
		ServerPort:         getIntEnv("SERVER_PORT", 8080),
		ServerHost:         getStringEnv("SERVER_HOST", "0.0.0.0"),
		ServerFramework:    strings.ToLower(getStringEnv("SERVER_FRAMEWORK", "fiber")),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", "15s"),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", "75s"),
		ServerIdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", "60s"),
		AppEnv:             strings.ToLower(getStringEnv("APP_ENV", "development")),
		AppName:            getStringEnv("APP_NAME", "Mindful Journey"),
		AppTimezone:        getStringEnv("APP_TIMEZONE", ""),
		LogLevel:           strings.ToLower(getStringEnv("LOG_LEVEL", "info")),
		CorsAllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", "*"),
		RateLimitPerSecond: getFloatEnv("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 20),
		SwaggerHost:        getStringEnv("SWAGGER_HOST", "localhost:8080"),
		SwaggerBasePath:    getStringEnv("SWAGGER_BASE_PATH", "/api/v1"),
		SwaggerSchemes:     getSliceEnv("SWAGGER_SCHEMES", "http,https"),

		StorageDriver: strings.ToLower(getStringEnv("STORAGE_DRIVER", StorageFile)),
		StoragePath:   getStringEnv("STORAGE_PATH", "data/mindful-journey-data.json"),
		StorageKey:    getStringEnv("STORAGE_KEY", "mindful-journey-data"),
		SQLitePath:    getStringEnv("SQLITE_PATH", "data/mindful-journey.db"),
		DBHost:        getStringEnv("DB_HOST", "localhost"),
		DBPort:        getIntEnv("DB_PORT", 5432),
		DBUser:        getStringEnv("DB_USER", "postgres"),
		DBPassword:    getStringEnv("DB_PASSWORD", "password"),
		DBName:        getStringEnv("DB_NAME", "mindful_journey"),
		DBSslMode:     getStringEnv("DB_SSL_MODE", "disable"),
		DBTimezone:    getStringEnv("DB_TIMEZONE", "UTC"),
		RedisAddr:     getStringEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getStringEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		LLMProvider:          strings.ToLower(getStringEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey:         getStringEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getStringEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:         getStringEnv("OPENAI_API_KEY", ""),
		OpenAIModel:          getStringEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:        getStringEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		LLMTimeout:           getDurationEnv("LLM_TIMEOUT", "20s"),
		LLMMaxRetries:        getIntEnv("LLM_MAX_RETRIES", 2),
		LLMRequestsPerSecond: getFloatEnv("LLM_RPS", 2),
		LLMBurst:             getIntEnv("LLM_BURST", 4),
		AffirmationCacheSize: getIntEnv("AFFIRMATION_CACHE_SIZE", 64),
		AffirmationCacheTTL:  getDurationEnv("AFFIRMATION_CACHE_TTL", "10m"),
	}

	if cfg.ServerFramework != "fiber" && cfg.ServerFramework != "gin" {
		log.Printf("Warning: Invalid SERVER_FRAMEWORK '%s'. Defaulting to 'fiber'.", cfg.ServerFramework)
		cfg.ServerFramework = "fiber"
	}

	validAppEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validAppEnvs[cfg.AppEnv] {
		log.Printf("Warning: Invalid APP_ENV '%s'. Defaulting to 'development'.", cfg.AppEnv)
		cfg.AppEnv = "development"
	}

	switch cfg.StorageDriver {
	case StorageFile, StorageSQLite, StoragePostgres, StorageRedis:
	default:
		log.Printf("Warning: Invalid STORAGE_DRIVER '%s'. Defaulting to '%s'.", cfg.StorageDriver, StorageFile)
		cfg.StorageDriver = StorageFile
	}

	if cfg.LLMProvider != ProviderGemini && cfg.LLMProvider != ProviderOpenAI {
		log.Printf("Warning: Invalid LLM_PROVIDER '%s'. Defaulting to '%s'.", cfg.LLMProvider, ProviderGemini)
		cfg.LLMProvider = ProviderGemini
	}

	return cfg, nil
}

// Location returns the zone calendar days are counted in. An empty or
// unknown APP_TIMEZONE means the process-local zone.
func (c *AppConfig) Location() *time.Location {
	if c.AppTimezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		log.Printf("Warning: Invalid APP_TIMEZONE '%s': %v. Using local time.", c.AppTimezone, err)
		return time.Local
	}
	return loc
}

func getStringEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid value for %s: %s. Using default %d.", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getDurationEnv(key, defaultValue string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s: %s. Using default %s.", key, valueStr, defaultValue)
		defaultDur, _ := time.ParseDuration(defaultValue)
		return defaultDur
	}
	return value
}

func getSliceEnv(key, defaultValue string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		valueStr = defaultValue
	}
	if valueStr == "" {
		return []string{}
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s: %s. Using default %f.", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
