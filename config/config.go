package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	MigrationsPath   string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RouteCacheTTL time.Duration

	JWTAccessSecret    string
	JWTRefreshSecret   string
	JWTAccessTTL       time.Duration
	JWTRefreshTTL      time.Duration
	MaxRefreshSessions int

	RefreshCookieName string
	CookieSecure      bool
	CookieDomain      string
	CORSOrigins       []string
	LoginRateLimit    string

	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	MaxUploadSize int64

	GoogleMapsAPIKey string
	DriverBotToken   string
	DashboardDir     string

	AdminUsername string
	AdminPassword string
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "ridedispatch"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "ridedispatch"))
	cfg.MigrationsPath = cast.ToString(getOrReturnDefault("MIGRATIONS_PATH", "migrations"))

	cfg.RedisHost = cast.ToString(getOrReturnDefault("REDIS_HOST", "localhost"))
	cfg.RedisPort = cast.ToString(getOrReturnDefault("REDIS_PORT", "6379"))
	cfg.RedisPassword = cast.ToString(getOrReturnDefault("REDIS_PASSWORD", ""))
	cfg.RedisDB = cast.ToInt(getOrReturnDefault("REDIS_DB", 0))
	cfg.RouteCacheTTL = cast.ToDuration(getOrReturnDefault("ROUTE_CACHE_TTL", "24h"))

	cfg.JWTAccessSecret = cast.ToString(getOrReturnDefault("JWT_ACCESS_SECRET", "change-me-access"))
	cfg.JWTRefreshSecret = cast.ToString(getOrReturnDefault("JWT_REFRESH_SECRET", "change-me-refresh"))
	cfg.JWTAccessTTL = cast.ToDuration(getOrReturnDefault("JWT_ACCESS_TTL", "15m"))
	cfg.JWTRefreshTTL = cast.ToDuration(getOrReturnDefault("JWT_REFRESH_TTL", "720h"))
	cfg.MaxRefreshSessions = cast.ToInt(getOrReturnDefault("MAX_REFRESH_SESSIONS", 5))

	cfg.RefreshCookieName = cast.ToString(getOrReturnDefault("REFRESH_COOKIE_NAME", "refresh_token"))
	cfg.CookieSecure = cast.ToBool(getOrReturnDefault("COOKIE_SECURE", false))
	cfg.CookieDomain = cast.ToString(getOrReturnDefault("COOKIE_DOMAIN", ""))
	cfg.CORSOrigins = splitList(cast.ToString(getOrReturnDefault("CORS_ORIGINS", "http://localhost:3000")))
	cfg.LoginRateLimit = cast.ToString(getOrReturnDefault("LOGIN_RATE_LIMIT", "10-M"))

	cfg.S3Endpoint = cast.ToString(getOrReturnDefault("S3_ENDPOINT", ""))
	cfg.S3Region = cast.ToString(getOrReturnDefault("S3_REGION", "us-east-1"))
	cfg.S3Bucket = cast.ToString(getOrReturnDefault("S3_BUCKET", "ridedispatch"))
	cfg.S3AccessKey = cast.ToString(getOrReturnDefault("S3_ACCESS_KEY", ""))
	cfg.S3SecretKey = cast.ToString(getOrReturnDefault("S3_SECRET_KEY", ""))
	cfg.MaxUploadSize = cast.ToInt64(getOrReturnDefault("MAX_UPLOAD_SIZE", 10<<20))

	cfg.GoogleMapsAPIKey = cast.ToString(getOrReturnDefault("GOOGLE_MAPS_API_KEY", ""))
	cfg.DriverBotToken = cast.ToString(getOrReturnDefault("DRIVER_BOT_TOKEN", ""))
	cfg.DashboardDir = cast.ToString(getOrReturnDefault("DASHBOARD_DIR", ""))

	cfg.AdminUsername = cast.ToString(getOrReturnDefault("ADMIN_USERNAME", ""))
	cfg.AdminPassword = cast.ToString(getOrReturnDefault("ADMIN_PASSWORD", ""))

	return cfg
}

// PostgresURL builds the connection string shared by pgxpool and golang-migrate.
func (c Config) PostgresURL() string {
	return "postgres://" + c.PostgresUser + ":" + c.PostgresPassword + "@" +
		c.PostgresHost + ":" + c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
