package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Serper    SerperConfig
	Fetch     FetchConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Database  DatabaseConfig
	Log       LogConfig
}

// SerperConfig - ключи и эндпоинты Serper. Деплой захардкожен на один
// регион/язык, поэтому locale-поля - обычные значения конфига, а не
// параметры запроса.
type SerperConfig struct {
	APIKey         string
	FallbackAPIKey string
	SearchURL      string
	NewsURL        string
	Location       string
	CountryCode    string
	LanguageCode   string
	Timeout        time.Duration
}

type FetchConfig struct {
	Timeout time.Duration
}

type RateLimitConfig struct {
	RequestsPerHour int
}

type CacheConfig struct {
	TTL time.Duration
}

// DatabaseConfig - опциональное хранилище аналитики. Пустой URL
// означает, что запись статистики выключена.
type DatabaseConfig struct {
	URL string
}

type LogConfig struct {
	Level string
}

func Load() *Config {
	return &Config{
		Serper: SerperConfig{
			APIKey:         os.Getenv("SERPER_API_KEY"),
			FallbackAPIKey: fallbackKeyFromEnv(),
			SearchURL:      getEnvOrDefault("SERPER_SEARCH_URL", "https://google.serper.dev/search"),
			NewsURL:        getEnvOrDefault("SERPER_NEWS_URL", "https://google.serper.dev/news"),
			Location:       getEnvOrDefault("SERPER_LOCATION", "France"),
			CountryCode:    getEnvOrDefault("SERPER_GL", "fr"),
			LanguageCode:   getEnvOrDefault("SERPER_HL", "fr"),
			Timeout:        time.Duration(getEnvIntOrDefault("SERPER_TIMEOUT_SEC", 15)) * time.Second,
		},
		Fetch: FetchConfig{
			Timeout: time.Duration(getEnvIntOrDefault("FETCH_TIMEOUT_SEC", 20)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerHour: getEnvIntOrDefault("RATE_LIMIT_PER_HOUR", 360),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 0)) * time.Second,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}
}

// fallbackKeyFromEnv перебирает исторические имена переменной для
// второго ключа - в таком же порядке, как их читал старый деплой.
func fallbackKeyFromEnv() string {
	for _, name := range []string{"SERPER_API_KEY_FALLBACK", "SERPER_SECONDARY_API_KEY", "SERPER_API_KEY_2"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
