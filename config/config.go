package config

import (
	"os"
	"strconv"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/joho/godotenv"
)

// Config carries every runtime setting. Values come from the process
// environment, optionally preloaded from a .env file.
type Config struct {
	ListenAddr string
	DSN        string

	JWTSecret     string
	JWTIssuer     string
	TokenLifetime time.Duration

	OTPLifetime        time.Duration
	ResetTokenLifetime time.Duration

	RedisAddr     string
	RedisPassword string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPUseTLS   bool

	SeedAdmin         bool
	SeedAdminUsername string
	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load reads the optional .env file and builds the Config. The JWT
// secret is the only hard requirement; everything else has a default.
func Load(envFiles ...string) (*Config, error) {
	// missing .env is fine, the environment may be set by the runtime
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		DSN:        getEnv("DATABASE_DSN", "file:logichain.db?_pragma=foreign_keys(1)"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getEnv("JWT_ISSUER", "logichain"),
		TokenLifetime: getDuration("JWT_LIFETIME", 24*time.Hour),

		OTPLifetime:        getDuration("OTP_LIFETIME", 5*time.Minute),
		ResetTokenLifetime: getDuration("RESET_TOKEN_LIFETIME", 15*time.Minute),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@logichain.local"),
		SMTPUseTLS:   getBool("SMTP_USE_TLS", false),

		SeedAdmin:         getBool("SEED_ADMIN", false),
		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@logichain.local"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces startup preconditions
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set", errors.CategoryInternal).
			WithTextCode("MISSING_SIGNING_KEY")
	}

	if c.SeedAdmin && c.SeedAdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD must be set when SEED_ADMIN is enabled", errors.CategoryInternal)
	}

	return nil
}

// UseRedis reports whether the shared credential store is configured
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
