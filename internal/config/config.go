package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Fetcher  FetcherConfig
	Catalog  CatalogConfig
	Resolver ResolverConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// ProxyRateLimit is requests per second allowed on the public /proxy route.
	ProxyRateLimit float64
}

type FetcherConfig struct {
	UserAgent     string
	MinBodyLength int
	Timeout       time.Duration
	// LocalProxyURL is the base URL of the reverse proxy used as a fetch
	// channel. Empty disables that channel (e.g. when this server IS the proxy).
	LocalProxyURL string
}

type CatalogConfig struct {
	MercadoLivreBaseURL string
	ScraperAPIBaseURL   string
	// ScraperAPIKey comes from the environment only; an empty key disables
	// the Amazon store.
	ScraperAPIKey string
	Timeout       time.Duration
}

type ResolverConfig struct {
	// PreferAPI resolves through the catalog API before falling back to
	// HTML scraping.
	PreferAPI bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "4000"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			ProxyRateLimit:  getFloatOrDefault("SERVER_PROXY_RATE_LIMIT", 5),
		},
		Fetcher: FetcherConfig{
			UserAgent:     getEnvOrDefault("FETCHER_USER_AGENT", defaultUserAgent),
			MinBodyLength: getIntOrDefault("FETCHER_MIN_BODY_LENGTH", 1000),
			Timeout:       getDurationOrDefault("FETCHER_TIMEOUT", 20*time.Second),
			LocalProxyURL: getEnvOrDefault("FETCHER_LOCAL_PROXY_URL", ""),
		},
		Catalog: CatalogConfig{
			MercadoLivreBaseURL: getEnvOrDefault("CATALOG_ML_BASE_URL", "https://api.mercadolibre.com"),
			ScraperAPIBaseURL:   getEnvOrDefault("CATALOG_SCRAPER_API_BASE_URL", "http://api.scraperapi.com"),
			ScraperAPIKey:       getEnvOrDefault("CATALOG_SCRAPER_API_KEY", ""),
			Timeout:             getDurationOrDefault("CATALOG_TIMEOUT", 30*time.Second),
		},
		Resolver: ResolverConfig{
			PreferAPI: getBoolOrDefault("RESOLVER_PREFER_API", true),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Fetcher.MinBodyLength < 1 {
		return fmt.Errorf("FETCHER_MIN_BODY_LENGTH must be at least 1")
	}

	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("FETCHER_TIMEOUT must be positive")
	}

	if c.Server.ProxyRateLimit <= 0 {
		return fmt.Errorf("SERVER_PROXY_RATE_LIMIT must be positive")
	}

	if c.Catalog.MercadoLivreBaseURL == "" {
		return fmt.Errorf("CATALOG_ML_BASE_URL must not be empty")
	}

	return nil
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
