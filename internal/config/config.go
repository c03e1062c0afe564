package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	LogLevel      string
	StoreDriver   string
	MigrationsDir string
	// BrowseLimit caps a browse result. Zero means no cap.
	BrowseLimit int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	URL string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads configuration from the environment. A .env file in the working
// directory, when present, is loaded first without overriding real variables.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	i32 := func(key string) int32 {
		raw := opt(key)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return 0
		}
		return int32(v)
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		LogLevel:      optDefault("LOG_LEVEL", "info"),
		StoreDriver:   strings.ToLower(optDefault("STORE_DRIVER", StoreDriverPostgres)),
		MigrationsDir: optDefault("MIGRATIONS_DIR", "migrations"),
		BrowseLimit:   int(i32("BROWSE_LIMIT")),
	}

	switch cfg.App.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          i32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          i32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}

	if cfg.App.StoreDriver == StoreDriverPostgres {
		for _, k := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER"} {
			req(k)
		}
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{URL: opt("REDIS_URL")}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
