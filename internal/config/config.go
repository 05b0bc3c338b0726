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

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Store    StoreConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Upload   UploadConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	JSON  bool
	Debug bool
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

	MigrationsDir string
}

// Configured reports whether enough is set to attempt a connection.
func (d DatabaseConfig) Configured() bool {
	return d.DBHost != "" && d.DBName != "" && d.DBUser != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
)

type StoreConfig struct {
	Driver          string
	Namespace       string
	SeedFreelancers bool
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiresIn time.Duration
}

// AuthConfig selects the authentication backend. An empty APIURL means
// users are registered and verified by this process.
type AuthConfig struct {
	APIURL  string
	Timeout time.Duration
}

type UploadConfig struct {
	Dir           string
	PublicBaseURL string
	MaxBytes      int
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

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
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}
	optInt := func(key string, def int) int {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key, "")
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

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Log = LogConfig{
		JSON:  optBool("LOG_JSON", false),
		Debug: optBool("LOG_DEBUG", false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", ""),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     opt("DB_NAME", ""),
		DBUser:     opt("DB_USER", ""),
		DBPassword: opt("DB_PASSWORD", ""),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),

		MigrationsDir: opt("MIGRATIONS_DIR", "migrations"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		DB:       optInt("REDIS_DB", 0),
	}

	cfg.Store = StoreConfig{
		Driver:          strings.ToLower(opt("STORE_DRIVER", StoreDriverMemory)),
		Namespace:       opt("STORE_NAMESPACE", "freelanceMatch"),
		SeedFreelancers: optBool("SEED_DEMO_FREELANCERS", true),
	}
	switch cfg.Store.Driver {
	case StoreDriverMemory, StoreDriverRedis:
	case StoreDriverPostgres:
		if !cfg.Database.Configured() {
			missing = append(missing, "DB_HOST", "DB_NAME", "DB_USER")
		}
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	cfg.JWT = JWTConfig{
		AccessSecret:    req("JWT_ACCESS_SECRET"),
		AccessExpiresIn: optDuration("JWT_ACCESS_EXPIRES_IN", 24*time.Hour),
	}

	cfg.Auth = AuthConfig{
		APIURL:  strings.TrimRight(opt("AUTH_API_URL", ""), "/"),
		Timeout: optDuration("AUTH_API_TIMEOUT", 10*time.Second),
	}

	cfg.Upload = UploadConfig{
		Dir:           opt("UPLOAD_DIR", "uploads"),
		PublicBaseURL: strings.TrimRight(opt("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		MaxBytes:      optInt("UPLOAD_MAX_BYTES", 5<<20),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
