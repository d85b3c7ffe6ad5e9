package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Credential store drivers.
const (
	CredentialsMemory = "memory"
	CredentialsFile   = "file"
	CredentialsRedis  = "redis"
)

type Config struct {
	Env        string
	Port       int
	APIPrefix  string
	EnableDocs bool

	Backend     BackendConfig
	Upstream    UpstreamConfig
	Credentials CredentialsConfig
	Redis       RedisConfig
	Auth        AuthConfig
	CORS        CORSConfig
	Log         LogConfig
}

// BackendConfig holds the candidate leave backend base URLs in priority order.
type BackendConfig struct {
	EnvURL     string
	RuntimeURL string
	MetaURL    string
}

// UpstreamConfig tunes the HTTP client talking to the leave backend.
type UpstreamConfig struct {
	Timeout time.Duration
}

// CredentialsConfig selects where bearer tokens are read from.
type CredentialsConfig struct {
	Driver      string
	File        string
	Watch       bool
	RedisPrefix string

	// SharedFallback lets requests without their own bearer use the stored slots.
	SharedFallback bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AuthConfig configures post-login redirects.
type AuthConfig struct {
	LoginPath string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.EnableDocs = v.GetBool("ENABLE_DOCS") && cfg.Env != EnvProduction

	cfg.Backend = BackendConfig{
		EnvURL:     v.GetString("BACKEND_URL"),
		RuntimeURL: v.GetString("BACKEND_RUNTIME_URL"),
		MetaURL:    v.GetString("BACKEND_META_URL"),
	}

	cfg.Upstream = UpstreamConfig{
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 10*time.Second),
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("CREDENTIALS_DRIVER")))
	switch driver {
	case CredentialsFile, CredentialsRedis:
	default:
		driver = CredentialsMemory
	}
	cfg.Credentials = CredentialsConfig{
		Driver:      driver,
		File:        v.GetString("CREDENTIALS_FILE"),
		Watch:       v.GetBool("CREDENTIALS_WATCH"),
		RedisPrefix: v.GetString("CREDENTIALS_REDIS_PREFIX"),

		SharedFallback: v.GetBool("CREDENTIALS_SHARED_FALLBACK"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Auth = AuthConfig{LoginPath: v.GetString("LOGIN_PATH")}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("ENABLE_DOCS", true)

	v.SetDefault("BACKEND_URL", "")
	v.SetDefault("BACKEND_RUNTIME_URL", "")
	v.SetDefault("BACKEND_META_URL", "")
	v.SetDefault("UPSTREAM_TIMEOUT", "10s")

	v.SetDefault("CREDENTIALS_DRIVER", CredentialsMemory)
	v.SetDefault("CREDENTIALS_FILE", "./credentials.json")
	v.SetDefault("CREDENTIALS_WATCH", false)
	v.SetDefault("CREDENTIALS_REDIS_PREFIX", "leave:credentials:")
	v.SetDefault("CREDENTIALS_SHARED_FALLBACK", false)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOGIN_PATH", "/login")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
