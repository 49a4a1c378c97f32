// Package config loads service configuration from a .env file with sane
// defaults and fails fast on missing credentials.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application's configuration values.
type Config struct {
	ServerPort string
	LogLevel   string
	LogFormat  string
	LogOutput  string

	// QueueBackend selects the job store: memory, postgres or redis.
	QueueBackend      string
	WorkerConcurrency int
	SandboxRoot       string

	DB     DBConfig
	Redis  RedisConfig
	GitHub GitHubConfig
	Auth   AuthConfig
	AI     AIConfig
}

// DBConfig holds the Postgres connection settings used when the postgres
// queue backend is selected.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// RedisConfig holds the Redis connection settings used when the redis queue
// backend is selected.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// GitHubConfig identifies the acting identity. AuthMode selects between a
// personal access token ("token") and a GitHub App installation ("app").
type GitHubConfig struct {
	AuthMode       string
	AccessToken    string
	WebhookSecret  string
	AppID          int64
	PrivateKeyPath string
	InstallationID int64
}

// AuthConfig holds the session-token settings for the authenticated API
// surface.
type AuthConfig struct {
	JWTSecret      string
	SessionTTLDays int
}

// AIConfig selects and parameterizes the generation model.
type AIConfig struct {
	LLMProvider    string
	GeneratorModel string
	OllamaHost     string
	GeminiAPIKey   string
}

// LoadConfig reads configuration from a .env file, sets sensible defaults,
// and validates required fields. It uses the Viper library to handle
// configuration loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("QUEUE_BACKEND", "memory")
	viper.SetDefault("WORKER_CONCURRENCY", 2)
	viper.SetDefault("SANDBOX_ROOT", "")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "swe")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "10m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("GITHUB_AUTH_MODE", "token")
	viper.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/100xswe-app.private-key.pem")
	viper.SetDefault("SESSION_TTL_DAYS", 7)
	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("GENERATOR_MODEL_NAME", "gemma3:latest")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no .env file found, relying on defaults", "error", err)
		}
	}

	if viper.GetString("GITHUB_WEBHOOK_SECRET") == "" {
		return nil, fmt.Errorf("GITHUB_WEBHOOK_SECRET must be set")
	}
	if viper.GetString("JWT_SECRET") == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	switch backend := viper.GetString("QUEUE_BACKEND"); backend {
	case "memory", "postgres", "redis":
	default:
		return nil, fmt.Errorf("unsupported QUEUE_BACKEND %q (want memory, postgres or redis)", backend)
	}

	switch mode := viper.GetString("GITHUB_AUTH_MODE"); mode {
	case "token":
		if viper.GetString("GITHUB_ACCESS_TOKEN") == "" {
			return nil, fmt.Errorf("GITHUB_ACCESS_TOKEN must be set when GITHUB_AUTH_MODE is token")
		}
	case "app":
		if viper.GetInt64("GITHUB_APP_ID") == 0 {
			return nil, fmt.Errorf("GITHUB_APP_ID must be set when GITHUB_AUTH_MODE is app")
		}
		if viper.GetInt64("GITHUB_INSTALLATION_ID") == 0 {
			return nil, fmt.Errorf("GITHUB_INSTALLATION_ID must be set when GITHUB_AUTH_MODE is app")
		}
	default:
		return nil, fmt.Errorf("unsupported GITHUB_AUTH_MODE %q (want token or app)", mode)
	}

	// Special handling for the Gemini generator model name.
	generatorModel := viper.GetString("GENERATOR_MODEL_NAME")
	if viper.GetString("LLM_PROVIDER") == "gemini" {
		if geminiModel := viper.GetString("GEMINI_GENERATOR_MODEL_NAME"); geminiModel != "" {
			generatorModel = geminiModel
		} else {
			generatorModel = "gemini-2.5-flash"
		}
	}

	return &Config{
		ServerPort:        viper.GetString("SERVER_PORT"),
		LogLevel:          viper.GetString("LOG_LEVEL"),
		LogFormat:         viper.GetString("LOG_FORMAT"),
		LogOutput:         viper.GetString("LOG_OUTPUT"),
		QueueBackend:      viper.GetString("QUEUE_BACKEND"),
		WorkerConcurrency: viper.GetInt("WORKER_CONCURRENCY"),
		SandboxRoot:       viper.GetString("SANDBOX_ROOT"),
		DB: DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		GitHub: GitHubConfig{
			AuthMode:       viper.GetString("GITHUB_AUTH_MODE"),
			AccessToken:    viper.GetString("GITHUB_ACCESS_TOKEN"),
			WebhookSecret:  viper.GetString("GITHUB_WEBHOOK_SECRET"),
			AppID:          viper.GetInt64("GITHUB_APP_ID"),
			PrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
			InstallationID: viper.GetInt64("GITHUB_INSTALLATION_ID"),
		},
		Auth: AuthConfig{
			JWTSecret:      viper.GetString("JWT_SECRET"),
			SessionTTLDays: viper.GetInt("SESSION_TTL_DAYS"),
		},
		AI: AIConfig{
			LLMProvider:    viper.GetString("LLM_PROVIDER"),
			GeneratorModel: generatorModel,
			OllamaHost:     viper.GetString("OLLAMA_HOST"),
			GeminiAPIKey:   viper.GetString("GEMINI_API_KEY"),
		},
	}, nil
}
