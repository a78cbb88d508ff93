package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	API          APIConfig
	TokenStore   TokenStoreConfig
	OAuth2Google OAuth2GoogleConfig
	Stub         StubConfig
	JWT          JWTConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

// APIConfig configures the client side: where the backend lives and how
// screens talk to it.
type APIConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RetryCount   int
	PageSize     int
	PollInterval time.Duration // 0 disables polling
}

type TokenStoreConfig struct {
	Path   string // empty keeps the session in memory only
	Secret string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// StubConfig holds the in-memory development backend settings.
type StubConfig struct {
	Port           int
	AllowedOrigins []string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// Load reads the client configuration. A .env file in the working directory
// is applied when present.
func Load() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// LoadStub reads the stub backend configuration.
func LoadStub() (*Config, error) {
	config, err := load()
	if err != nil {
		return nil, err
	}
	if err := config.ValidateStub(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// API configuration
	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	retryCount, err := strconv.Atoi(getEnv("HTTP_RETRY_COUNT", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_RETRY_COUNT: %w", err)
	}
	pageSize, err := strconv.Atoi(getEnv("PAGE_SIZE", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAGE_SIZE: %w", err)
	}
	pollInterval, err := time.ParseDuration(getEnv("POLL_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}

	config.API = APIConfig{
		BaseURL:      strings.TrimRight(getEnv("API_BASE_URL", ""), "/"),
		Timeout:      timeout,
		RetryCount:   retryCount,
		PageSize:     pageSize,
		PollInterval: pollInterval,
	}

	config.TokenStore = TokenStoreConfig{
		Path:   getEnv("TOKEN_STORE_PATH", ""),
		Secret: getEnv("TOKEN_STORE_SECRET", ""),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	// Stub backend configuration
	stubPort, err := strconv.Atoi(getEnv("STUB_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid STUB_PORT: %w", err)
	}
	config.Stub = StubConfig{
		Port:           stubPort,
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "24h"),
	}

	return config, nil
}

// Validate validates the client configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.API.RetryCount < 0 {
		return fmt.Errorf("HTTP_RETRY_COUNT must not be negative")
	}
	if c.API.PageSize < 0 {
		return fmt.Errorf("PAGE_SIZE must not be negative")
	}
	if c.API.PollInterval < 0 {
		return fmt.Errorf("POLL_INTERVAL must not be negative")
	}
	if c.TokenStore.Path != "" && c.TokenStore.Secret == "" {
		return fmt.Errorf("TOKEN_STORE_SECRET is required when TOKEN_STORE_PATH is set")
	}
	return nil
}

// ValidateStub validates the stub backend configuration
func (c *Config) ValidateStub() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Stub.Port <= 0 || c.Stub.Port > 65535 {
		return fmt.Errorf("STUB_PORT must be a valid port")
	}
	return nil
}

// GoogleSignInEnabled reports whether the OAuth client is configured.
func (c *Config) GoogleSignInEnabled() bool {
	return c.OAuth2Google.ClientID != "" && c.OAuth2Google.RedirectURL != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
