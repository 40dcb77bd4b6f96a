package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP server
	HTTPHost              string        `env:"HTTP_HOST" default:"0.0.0.0"`
	HTTPPort              int           `env:"HTTP_PORT" default:"8080"`
	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT" default:"10s"`
	RecommendationTimeout time.Duration `env:"RECOMMENDATION_TIMEOUT" default:"60s"`

	// Database
	DatabaseURL       string        `env:"DATABASE_URL" required:"true"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"30m"`
	RunMigrations     bool          `env:"RUN_MIGRATIONS" default:"true"`

	// Authentication
	JWTSecret      string        `env:"JWT_SECRET" required:"true"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" default:"30m"`

	// Game catalog (IGDB via Twitch client credentials)
	IGDBClientID     string `env:"IGDB_CLIENT_ID" required:"true"`
	IGDBClientSecret string `env:"IGDB_CLIENT_SECRET" required:"true"`
	IGDBBaseURL      string `env:"IGDB_BASE_URL" default:"https://api.igdb.com/v4"`
	TwitchTokenURL   string `env:"TWITCH_TOKEN_URL" default:"https://id.twitch.tv/oauth2/token"`

	// Generative AI
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" default:"gemini-1.5-pro-latest"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`

	// Recommendation cache
	RedisURL                string        `env:"REDIS_URL"`
	RecommendationFreshness time.Duration `env:"RECOMMENDATION_FRESHNESS" default:"24h"`

	// Fuzzy game lookup, 0..100
	FuzzyMatchThreshold int `env:"FUZZY_MATCH_THRESHOLD" default:"85"`

	// Rate limiting (per client IP)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"40"`

	// Observability
	LogLevel       string   `env:"LOG_LEVEL" default:"info"`
	LogFormat      string   `env:"LOG_FORMAT" default:"json"`
	CORSOrigins    []string `env:"CORS_ORIGINS" default:"*"`
	MetricsEnabled bool     `env:"METRICS_ENABLED" default:"true"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// A missing .env is fine, system env vars still apply
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// HTTP server
	if err := loadEnvString(&config.HTTPHost, "HTTP_HOST", "0.0.0.0"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RequestTimeout, "REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RecommendationTimeout, "RECOMMENDATION_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxOpenConns, "DB_MAX_OPEN_CONNS", 25); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.DBMaxIdleConns, "DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.DBConnMaxLifetime, "DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.RunMigrations, "RUN_MIGRATIONS", true); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 30*time.Minute); err != nil {
		return nil, err
	}

	// Game catalog credentials are mandatory, the API cannot register games without them
	if err := loadEnvStringRequired(&config.IGDBClientID, "IGDB_CLIENT_ID"); err != nil {
		return nil, err
	}
	if err := loadEnvStringRequired(&config.IGDBClientSecret, "IGDB_CLIENT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.IGDBBaseURL, "IGDB_BASE_URL", "https://api.igdb.com/v4"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.TwitchTokenURL, "TWITCH_TOKEN_URL", "https://id.twitch.tv/oauth2/token"); err != nil {
		return nil, err
	}

	// Generative AI
	if err := loadEnvString(&config.GeminiAPIKey, "GEMINI_API_KEY", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.GeminiModel, "GEMINI_MODEL", "gemini-1.5-pro-latest"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.GeminiBaseURL, "GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"); err != nil {
		return nil, err
	}

	// Recommendation cache
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RecommendationFreshness, "RECOMMENDATION_FRESHNESS", 24*time.Hour); err != nil {
		return nil, err
	}

	if err := loadEnvInt(&config.FuzzyMatchThreshold, "FUZZY_MATCH_THRESHOLD", 85); err != nil {
		return nil, err
	}

	// Rate limiting
	if err := loadEnvFloat(&config.RateLimitRPS, "RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.RateLimitBurst, "RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}

	// Observability
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "json"); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"*"}); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.MetricsEnabled, "METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if c.IGDBClientID == "" || c.IGDBClientSecret == "" {
		errors = append(errors, "IGDB_CLIENT_ID and IGDB_CLIENT_SECRET must be set")
	}

	if c.FuzzyMatchThreshold < 0 || c.FuzzyMatchThreshold > 100 {
		errors = append(errors, "FUZZY_MATCH_THRESHOLD must be between 0 and 100")
	}

	if c.AccessTokenTTL <= 0 {
		errors = append(errors, "ACCESS_TOKEN_TTL must be positive")
	}
	if c.RecommendationFreshness <= 0 {
		errors = append(errors, "RECOMMENDATION_FRESHNESS must be positive")
	}
	if c.RequestTimeout <= 0 || c.RecommendationTimeout <= 0 {
		errors = append(errors, "REQUEST_TIMEOUT and RECOMMENDATION_TIMEOUT must be positive")
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errors = append(errors, "RATE_LIMIT_RPS must be positive and RATE_LIMIT_BURST at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
