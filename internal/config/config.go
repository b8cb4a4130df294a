package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	Port        string
	ContentPath string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret      string
	SessionExpiry  time.Duration
	RememberExpiry time.Duration
	HashCost       int

	// Profile pictures
	StaticRoot       string
	ImageMaxDim      int
	AllowedImageExts []string
	DefaultImageFile string
	MaxUploadBytes   int64

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "accountd"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/accountd.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:      envRequired("JWT_SECRET"),
		SessionExpiry:  envDuration("SESSION_EXPIRY", 12*time.Hour),
		RememberExpiry: envDuration("REMEMBER_EXPIRY", 30*24*time.Hour),
		HashCost:       envInt("HASH_COST", bcrypt.DefaultCost),

		// Profile pictures
		StaticRoot:       envString("STATIC_ROOT", "./static"),
		ImageMaxDim:      envInt("IMAGE_MAX_DIM", 125),
		AllowedImageExts: envList("ALLOWED_IMAGE_EXTS", ".jpg,.jpeg,.png,.gif"),
		DefaultImageFile: envString("DEFAULT_IMAGE_FILE", "default.jpg"),
		MaxUploadBytes:   envInt64("MAX_UPLOAD_BYTES", 8<<20),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	return cfg
}

// ProfilePicsRoot is the on-disk directory holding stored thumbnails and the
// default image, served under /static/profile_pics/.
func (c *Config) ProfilePicsRoot() string {
	return filepath.Join(c.StaticRoot, "profile_pics")
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envList(key, def string) []string {
	v := envString(key, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
