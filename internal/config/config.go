package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "5000"
	defaultDatabaseURL     = "reclamation.db"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultJWTTTL          = "24h"
	defaultResetTokenTTL   = "1h"
	defaultVerificationTTL = "24h"
	defaultFrontendURL     = "http://localhost:3000"
	defaultUploadDir       = "./uploads"
	defaultMaxUploadSize   = "5242880"
	defaultSMTPPort        = "587"
	defaultMailFrom        = "no-reply@reclamation.local"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret       string
	JWTTTL          time.Duration
	ResetTokenTTL   time.Duration
	VerificationTTL time.Duration
	FrontendURL     string

	UploadDir     string
	MaxUploadSize int64

	SMTP SMTPConfig

	RedisAddr     string
	RedisPassword string
	RateLimit     RateLimitConfig

	AMQPURL string

	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("NODE_ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.FrontendURL = strings.TrimRight(strings.TrimSpace(getEnv("FRONTEND_URL", defaultFrontendURL)), "/")
	cfg.UploadDir = strings.TrimSpace(getEnv("UPLOAD_DIR", defaultUploadDir))

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.ResetTokenTTL, err = parseDurationEnv("RESET_TOKEN_TTL", defaultResetTokenTTL); err != nil {
		return nil, err
	}
	if cfg.VerificationTTL, err = parseDurationEnv("VERIFICATION_TTL", defaultVerificationTTL); err != nil {
		return nil, err
	}
	if cfg.MaxUploadSize, err = parseInt64Env("MAX_UPLOAD_SIZE", defaultMaxUploadSize); err != nil {
		return nil, err
	}

	cfg.SMTP = SMTPConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port:     strings.TrimSpace(getEnv("SMTP_PORT", defaultSMTPPort)),
		Username: strings.TrimSpace(getEnv("SMTP_USER", os.Getenv("EMAIL_USER"))),
		Password: getEnv("SMTP_PASSWORD", os.Getenv("EMAIL_PASS")),
		From:     strings.TrimSpace(getEnv("MAIL_FROM", defaultMailFrom)),
	}

	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RateLimit, err = loadRateLimit(cfg.RedisAddr != ""); err != nil {
		return nil, err
	}

	cfg.AMQPURL = strings.TrimSpace(os.Getenv("AMQP_URL"))

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.TrimSpace(os.Getenv("LOG_FORMAT"))

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return isProdLike(c.AppEnv) }

func loadRateLimit(haveRedis bool) (RateLimitConfig, error) {
	rl := RateLimitConfig{
		Enabled: haveRedis && parseBoolEnv("RATE_LIMIT_ENABLED", "true"),
		Prefix:  strings.TrimSpace(getEnv("RATE_LIMIT_PREFIX", "rl")),
	}

	var err error
	if rl.Capacity, err = parseIntEnv("RATE_LIMIT_CAPACITY", "10"); err != nil {
		return rl, err
	}
	if rl.RefillTokens, err = parseIntEnv("RATE_LIMIT_REFILL_TOKENS", "1"); err != nil {
		return rl, err
	}
	if rl.RefillInterval, err = parseDurationEnv("RATE_LIMIT_REFILL_INTERVAL", "6s"); err != nil {
		return rl, err
	}
	if rl.TTL, err = parseDurationEnv("RATE_LIMIT_TTL", "10m"); err != nil {
		return rl, err
	}

	if rl.Capacity < 1 {
		rl.Capacity = 1
	}
	if rl.RefillTokens < 1 {
		rl.RefillTokens = 1
	}
	if minTTL := 5 * rl.RefillInterval; rl.TTL < minTTL {
		rl.TTL = minTTL
	}
	return rl, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be > 0")
	}
	if cfg.VerificationTTL <= 0 {
		return fmt.Errorf("VERIFICATION_TTL must be > 0")
	}
	if cfg.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be > 0")
	}
	if cfg.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if cfg.RateLimit.RefillInterval <= 0 {
		return fmt.Errorf("RATE_LIMIT_REFILL_INTERVAL must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if strings.HasPrefix(cfg.FrontendURL, "http://localhost") {
			return fmt.Errorf("in prod/release FRONTEND_URL must point at the deployed client")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
