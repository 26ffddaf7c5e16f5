package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBSQLitePath      string
	DBMigrate         bool
	DBMetrics         bool
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
	DBSlowQuery       time.Duration

	ReceiptNumberTemplate string

	SettingsCache    string
	SettingsCacheTTL time.Duration
	Redis            RedisConfig

	Printer              PrinterConfig
	PrintDispatchRPS     float64
	PrintDispatchBurst   int
	PrintDispatchLimiter string

	CORSAllowedOrigins []string
	PrintLayoutPath    string

	OTLPEndpoint string
	OTLPInsecure bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PrinterConfig struct {
	Type     string
	Address  string
	SpoolDir string
	Timeout  time.Duration
}

const (
	SettingsCacheMemory = "memory"
	SettingsCacheRedis  = "redis"

	PrinterNone    = "none"
	PrinterNetwork = "network"
	PrinterSpool   = "spool"

	LimiterLocal = "local"
	LimiterRedis = "redis"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "recibo"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		DBType:            strings.ToLower(getenv("DATABASE_TYPE", "sqlite")),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "recibo"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBSQLitePath:      getenv("DATABASE_SQLITE_PATH", "recibo.db"),
		DBMigrate:         getenvBool("DATABASE_MIGRATE", true),
		DBMetrics:         getenvBool("DATABASE_METRICS", true),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 5)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 20)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 1800)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 300)),
		DBSlowQuery:       time.Duration(getenvInt64("DATABASE_SLOW_QUERY_MS", 200)) * time.Millisecond,

		ReceiptNumberTemplate: getenv("RECEIPT_NUMBER_TEMPLATE", "RECIBO-{SEQ8}"),

		SettingsCache:    strings.ToLower(getenv("SETTINGS_CACHE", SettingsCacheMemory)),
		SettingsCacheTTL: time.Duration(getenvInt64("SETTINGS_CACHE_TTL_SECONDS", 300)) * time.Second,
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       int(getenvInt64("REDIS_DB", 0)),
		},

		Printer: PrinterConfig{
			Type:     strings.ToLower(getenv("PRINTER_TYPE", PrinterNone)),
			Address:  strings.TrimSpace(getenv("PRINTER_ADDRESS", "")),
			SpoolDir: getenv("PRINTER_SPOOL_DIR", "spool"),
			Timeout:  time.Duration(getenvInt64("PRINTER_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		PrintDispatchRPS:     getenvFloat("PRINT_DISPATCH_RPS", 2),
		PrintDispatchBurst:   int(getenvInt64("PRINT_DISPATCH_BURST", 4)),
		PrintDispatchLimiter: strings.ToLower(getenv("PRINT_DISPATCH_LIMITER", LimiterLocal)),

		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS", "")),
		PrintLayoutPath:    getenv("PRINT_LAYOUT_PATH", ""),

		OTLPEndpoint: strings.TrimSpace(getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")),
		OTLPInsecure: getenvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
