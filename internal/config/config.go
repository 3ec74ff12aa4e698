package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Matching MatchingConfig
	Weather  WeatherConfig
	Geocode  GeocodeConfig
	Routing  RoutingConfig
	Pricing  PricingConfig
	Cache    CacheConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
	LogLevel   string
}

type MatchingConfig struct {
	PerfectRadiusKM   float64
	GoodRadiusKM      float64
	PerfectTimeWindow time.Duration
	GoodTimeWindow    time.Duration
}

type WeatherConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type GeocodeConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type RoutingConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PricingConfig struct {
	BaseFare      float64
	PerKMRate     float64
	PerMinuteRate float64
}

type CacheConfig struct {
	// Backend selects where provider responses are cached:
	// "memory" for per-process, "redis" for shared across instances.
	Backend string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "poolmate"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MaxIdle:  getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 5),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", "localhost"),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			MaxRetries:  getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:    getEnvAsInt("REDIS_POOL_SIZE", 50),
			DialTimeout: 5 * time.Second,
			ReadTimeout: 3 * time.Second,
		},
		NewRelic: NewRelicConfig{
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			AppName:    getEnv("NEW_RELIC_APP_NAME", "Poolmate-Carpool"),
			Enabled:    getEnvAsBool("NEW_RELIC_ENABLED", false),
			LogLevel:   getEnv("NEW_RELIC_LOG_LEVEL", "info"),
		},
		Matching: MatchingConfig{
			PerfectRadiusKM:   getEnvAsFloat64("MATCH_PERFECT_RADIUS_KM", 5.0),
			GoodRadiusKM:      getEnvAsFloat64("MATCH_GOOD_RADIUS_KM", 15.0),
			PerfectTimeWindow: time.Duration(getEnvAsInt("MATCH_PERFECT_WINDOW_MINUTES", 60)) * time.Minute,
			GoodTimeWindow:    time.Duration(getEnvAsInt("MATCH_GOOD_WINDOW_MINUTES", 180)) * time.Minute,
		},
		Weather: WeatherConfig{
			BaseURL:  getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com"),
			Timeout:  time.Duration(getEnvAsInt("WEATHER_TIMEOUT_MS", 5000)) * time.Millisecond,
			CacheTTL: time.Duration(getEnvAsInt("WEATHER_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Geocode: GeocodeConfig{
			BaseURL:  getEnv("GEOCODE_BASE_URL", "https://geocoding-api.open-meteo.com"),
			Timeout:  time.Duration(getEnvAsInt("GEOCODE_TIMEOUT_MS", 5000)) * time.Millisecond,
			CacheTTL: time.Duration(getEnvAsInt("GEOCODE_CACHE_TTL_HOURS", 24)) * time.Hour,
		},
		Routing: RoutingConfig{
			BaseURL: getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
			Timeout: time.Duration(getEnvAsInt("OSRM_TIMEOUT_MS", 5000)) * time.Millisecond,
		},
		Pricing: PricingConfig{
			BaseFare:      getEnvAsFloat64("PRICING_BASE_FARE", 50.0),
			PerKMRate:     getEnvAsFloat64("PRICING_PER_KM_RATE", 10.0),
			PerMinuteRate: getEnvAsFloat64("PRICING_PER_MINUTE_RATE", 2.0),
		},
		Cache: CacheConfig{
			Backend: getEnv("CACHE_BACKEND", "memory"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "redis" {
		return fmt.Errorf("CACHE_BACKEND must be memory or redis")
	}
	if c.Cache.Backend == "redis" && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when CACHE_BACKEND is redis")
	}
	if c.Matching.PerfectRadiusKM <= 0 || c.Matching.GoodRadiusKM < c.Matching.PerfectRadiusKM {
		return fmt.Errorf("matching radii must be positive and ordered")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
