package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the auth service.
// It merges file defaults and environment overrides to support both
// local and deployed runs.
type Config struct {
	ServiceID   string
	Environment string

	HTTPPort int
	GRPCPort int

	DatabaseURL string
	RedisURL    string

	AccessTokenSecret  string
	RefreshTokenSecret string

	BcryptCost int

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ActivationTTL   time.Duration
	ResetTokenTTL   time.Duration
	ResetCooldown   time.Duration

	ThrottleWindow      time.Duration
	ThrottleThreshold   int
	ThrottleBackoffStep time.Duration

	ClientURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailEnabled  bool

	MaxDBConns int32
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID          string `yaml:"id"`
		Environment string `yaml:"environment"`
		HTTPPort    int    `yaml:"http_port"`
		GRPCPort    int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Client struct {
		URL string `yaml:"url"`
	} `yaml:"client"`
	Mail struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		From     string `yaml:"from"`
		Enabled  bool   `yaml:"enabled"`
	} `yaml:"mail"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:           "nestfeed-auth",
		Environment:         "development",
		HTTPPort:            8080,
		GRPCPort:            9090,
		BcryptCost:          12,
		AccessTokenTTL:      time.Hour,
		RefreshTokenTTL:     7 * 24 * time.Hour,
		ActivationTTL:       24 * time.Hour,
		ResetTokenTTL:       15 * time.Minute,
		ResetCooldown:       15 * time.Minute,
		ThrottleWindow:      10 * time.Minute,
		ThrottleThreshold:   5,
		ThrottleBackoffStep: 250 * time.Millisecond,
		ClientURL:           "http://localhost:3000",
		SMTPPort:            587,
		MailFrom:            "no-reply@nestfeed.local",
		MaxDBConns:          20,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.Environment != "" {
			cfg.Environment = f.Service.Environment
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Client.URL != "" {
			cfg.ClientURL = f.Client.URL
		}
		if f.Mail.Host != "" {
			cfg.SMTPHost = f.Mail.Host
		}
		if f.Mail.Port > 0 {
			cfg.SMTPPort = f.Mail.Port
		}
		if f.Mail.Username != "" {
			cfg.SMTPUsername = f.Mail.Username
		}
		if f.Mail.From != "" {
			cfg.MailFrom = f.Mail.From
		}
		cfg.MailEnabled = f.Mail.Enabled
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(envOrDefault("APP_ENV", cfg.Environment)))
	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.AccessTokenSecret = envOrDefault("ACCESS_TOKEN_SECRET", cfg.AccessTokenSecret)
	cfg.RefreshTokenSecret = envOrDefault("REFRESH_TOKEN_SECRET", cfg.RefreshTokenSecret)
	cfg.ClientURL = strings.TrimRight(envOrDefault("CLIENT_URL", cfg.ClientURL), "/")

	cfg.SMTPHost = envOrDefault("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = envInt("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = envOrDefault("SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = envOrDefault("SMTP_PASSWORD", cfg.SMTPPassword)
	cfg.MailFrom = envOrDefault("MAIL_FROM", cfg.MailFrom)
	cfg.MailEnabled = envBool("MAIL_ENABLED", cfg.MailEnabled)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.ThrottleThreshold = envInt("FAILED_LOGIN_THRESHOLD", cfg.ThrottleThreshold)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))

	cfg.AccessTokenTTL = time.Duration(envInt("ACCESS_TOKEN_TTL_MINUTES", int(cfg.AccessTokenTTL.Minutes()))) * time.Minute
	cfg.RefreshTokenTTL = time.Duration(envInt("REFRESH_TOKEN_TTL_DAYS", int(cfg.RefreshTokenTTL.Hours()/24))) * 24 * time.Hour
	cfg.ActivationTTL = time.Duration(envInt("ACTIVATION_TTL_HOURS", int(cfg.ActivationTTL.Hours()))) * time.Hour
	cfg.ResetTokenTTL = time.Duration(envInt("RESET_TOKEN_TTL_MINUTES", int(cfg.ResetTokenTTL.Minutes()))) * time.Minute
	cfg.ResetCooldown = time.Duration(envInt("RESET_COOLDOWN_MINUTES", int(cfg.ResetCooldown.Minutes()))) * time.Minute
	cfg.ThrottleWindow = time.Duration(envInt("LOGIN_THROTTLE_WINDOW_SECONDS", int(cfg.ThrottleWindow.Seconds()))) * time.Second
	cfg.ThrottleBackoffStep = time.Duration(envInt("LOGIN_BACKOFF_STEP_MS", int(cfg.ThrottleBackoffStep.Milliseconds()))) * time.Millisecond

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return Config{}, fmt.Errorf("missing ACCESS_TOKEN_SECRET or REFRESH_TOKEN_SECRET")
	}

	return cfg, nil
}

// DevMode reports whether the service runs without production hardening,
// which currently only relaxes the Secure cookie flag.
func (c Config) DevMode() bool {
	return c.Environment != "production"
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envBool parses common boolean env forms while keeping a deterministic fallback.
func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}
