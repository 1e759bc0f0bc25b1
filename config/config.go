package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MaxArcPoints caps per-route sampling so one request cannot pin the CPU.
const MaxArcPoints = 5000

// Config holds all application configuration
type Config struct {
	Port            string
	HTTPBindAddr    string
	Environment     string
	LoggingConfig   LoggingConfig
	PostgresConfig  PostgresConfig
	RedisConfig     RedisConfig
	MapConfig       MapConfig
	CacheConfig     CacheConfig
	RefreshConfig   RefreshConfig
	AdminAuthConfig AdminAuthConfig
	InitSchema      bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// PostgresConfig holds PostgreSQL connection configuration. Saved flight
// logs and airport overrides need it; everything else works without.
type PostgresConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

// DSN renders the connection URL understood by both pgx and lib/pq.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   net.JoinHostPort(p.Host, p.Port),
		Path:   "/" + p.DBName,
	}
	q := u.Query()
	q.Set("sslmode", p.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

// MapConfig holds map rendering defaults.
type MapConfig struct {
	ArcPoints      int
	ScaleWidth     bool
	Workers        int
	TopAirports    int
	DefaultLogPath string
	DefaultLogURL  string
	FetchTimeout   time.Duration
}

// CacheConfig controls the parsed-route cache.
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

// RefreshConfig controls the background reload of the default log.
type RefreshConfig struct {
	Enabled  bool
	Schedule string
	Timeout  time.Duration
}

// AdminAuthConfig holds admin authentication configuration
type AdminAuthConfig struct {
	Enabled  bool
	Username string
	Password string
	Token    string // Alternative: Bearer token auth
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		HTTPBindAddr: getEnv("HTTP_BIND_ADDR", ""),
		Environment:  getEnv("ENVIRONMENT", "development"),
		InitSchema:   getBool("INIT_SCHEMA", true),
		LoggingConfig: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		PostgresConfig: PostgresConfig{
			Enabled:  getBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "postgres"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "flightmap"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "flightmap"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(getInt("DB_MAX_CONNS", 5)),
		},
		RedisConfig: RedisConfig{
			Enabled:  getBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "redis"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		MapConfig: MapConfig{
			ArcPoints:      getInt("MAP_ARC_POINTS", 100),
			ScaleWidth:     getBool("MAP_SCALE_WIDTH", true),
			Workers:        getInt("MAP_WORKERS", 0),
			TopAirports:    getInt("MAP_TOP_AIRPORTS", 10),
			DefaultLogPath: getEnv("FLIGHT_LOG_PATH", "data/my_flight_log.csv"),
			DefaultLogURL:  getEnv("FLIGHT_LOG_URL", ""),
			FetchTimeout:   getDuration("FLIGHT_LOG_FETCH_TIMEOUT", 15*time.Second),
		},
		CacheConfig: CacheConfig{
			TTL:    getDuration("ROUTE_CACHE_TTL", time.Hour),
			Prefix: getEnv("ROUTE_CACHE_PREFIX", "flightmap"),
		},
		RefreshConfig: RefreshConfig{
			Enabled:  getBool("REFRESH_ENABLED", true),
			Schedule: getEnv("REFRESH_SCHEDULE", "@every 5m"),
			Timeout:  getDuration("REFRESH_TIMEOUT", 30*time.Second),
		},
		AdminAuthConfig: AdminAuthConfig{
			Enabled:  getBool("ADMIN_AUTH_ENABLED", false),
			Username: getEnv("ADMIN_AUTH_USERNAME", ""),
			Password: getEnv("ADMIN_AUTH_PASSWORD", ""),
			Token:    getEnv("ADMIN_AUTH_TOKEN", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.MapConfig.ArcPoints < 0 || c.MapConfig.ArcPoints > MaxArcPoints {
		errs = append(errs, fmt.Errorf("MAP_ARC_POINTS must be between 0 and %d, got %d", MaxArcPoints, c.MapConfig.ArcPoints))
	}
	if c.MapConfig.Workers < 0 {
		errs = append(errs, fmt.Errorf("MAP_WORKERS must not be negative, got %d", c.MapConfig.Workers))
	}
	if c.RefreshConfig.Enabled && strings.TrimSpace(c.RefreshConfig.Schedule) == "" {
		errs = append(errs, errors.New("REFRESH_SCHEDULE is required when REFRESH_ENABLED is set"))
	}
	if c.AdminAuthConfig.Enabled && c.AdminAuthConfig.Token == "" &&
		(c.AdminAuthConfig.Username == "" || c.AdminAuthConfig.Password == "") {
		errs = append(errs, errors.New("admin auth is enabled but neither a token nor basic credentials are set"))
	}
	return errors.Join(errs...)
}

// LoadTestConfig loads test configuration
func LoadTestConfig() *Config {
	return &Config{
		Port:        "0",
		Environment: "test",
		LoggingConfig: LoggingConfig{
			Level:  "error",
			Format: "text",
		},
		PostgresConfig: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "flightmap"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME_TEST", "flightmap_test"),
			SSLMode:  "disable",
			MaxConns: 2,
		},
		RedisConfig: RedisConfig{
			Host: getEnv("REDIS_HOST", "localhost"),
			Port: getEnv("REDIS_PORT", "6379"),
		},
		MapConfig: MapConfig{
			ArcPoints:    20,
			ScaleWidth:   true,
			Workers:      2,
			TopAirports:  10,
			FetchTimeout: 5 * time.Second,
		},
		CacheConfig: CacheConfig{
			TTL:    time.Minute,
			Prefix: "flightmap_test",
		},
	}
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, defaultValue.String()))
	if err != nil {
		return defaultValue
	}
	return v
}
