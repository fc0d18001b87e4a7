package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string
	Name        string
	Version     string
	HTTP        HTTPConfig
	Postgres    PostgresConfig
	JWT         JWTConfig
	S3          S3Config
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	Shop        ShopConfig
	Scheduler   SchedulerConfig
	Admin       AdminConfig
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHeaderMB  int
}

type PostgresConfig struct {
	Host               string
	Port               string
	Username           string
	Password           string
	DBName             string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	MaxLifetime        time.Duration
}

type JWTConfig struct {
	SigningKey      string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	PublicURL       string
	MaxUploadMB     int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	CacheTTL time.Duration
}

type RateLimitConfig struct {
	BookingsPerMinute int
	Burst             int
}

type ShopConfig struct {
	Timezone            string
	Location            *time.Location
	WhatsAppNumber      string
	DefaultSlotInterval int
	BufferInBreak       bool
	CalendarMaxDays     int
}

type SchedulerConfig struct {
	Enabled     bool
	CleanupSpec string
}

type AdminConfig struct {
	Email    string
	Password string
}

func NewConfig() (*Config, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	httpReadTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	httpWriteTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	postgresMaxLifetime, err := time.ParseDuration(getEnv("POSTGRES_MAX_LIFETIME", "5m"))
	if err != nil {
		return nil, err
	}

	jwtAccessTokenTTL, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, err
	}

	jwtRefreshTokenTTL, err := time.ParseDuration(getEnv("JWT_REFRESH_TOKEN_TTL", "720h"))
	if err != nil {
		return nil, err
	}

	redisCacheTTL, err := time.ParseDuration(getEnv("REDIS_CACHE_TTL", "5m"))
	if err != nil {
		return nil, err
	}

	timezone := getEnv("SHOP_TIMEZONE", "America/Bahia")
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("некорректный часовой пояс %q: %w", timezone, err)
	}

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Name:        getEnv("APP_NAME", "barbershop"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		HTTP: HTTPConfig{
			Port:         getEnv("HTTP_PORT", "8080"),
			ReadTimeout:  httpReadTimeout,
			WriteTimeout: httpWriteTimeout,
			MaxHeaderMB:  getEnvAsInt("HTTP_MAX_HEADER_MB", 1),
		},
		Postgres: PostgresConfig{
			Host:               getEnv("POSTGRES_HOST", "localhost"),
			Port:               getEnv("POSTGRES_PORT", "5432"),
			Username:           getEnv("POSTGRES_USER", "postgres"),
			Password:           getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:             getEnv("POSTGRES_DB", "barbershop"),
			SSLMode:            getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConnections:     getEnvAsInt("POSTGRES_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("POSTGRES_MAX_IDLE_CONNECTIONS", 2),
			MaxLifetime:        postgresMaxLifetime,
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "your_secret_key"),
			AccessTokenTTL:  jwtAccessTokenTTL,
			RefreshTokenTTL: jwtRefreshTokenTTL,
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("S3_BUCKET", "site-assets"),
			UseSSL:          getEnvAsBool("S3_USE_SSL", true),
			PublicURL:       getEnv("S3_PUBLIC_URL", ""),
			MaxUploadMB:     getEnvAsInt("S3_MAX_UPLOAD_MB", 5),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: redisCacheTTL,
		},
		RateLimit: RateLimitConfig{
			BookingsPerMinute: getEnvAsInt("RATE_LIMIT_BOOKINGS_PER_MINUTE", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 3),
		},
		Shop: ShopConfig{
			Timezone:            timezone,
			Location:            location,
			WhatsAppNumber:      getEnv("SHOP_WHATSAPP_NUMBER", "5571988335001"),
			DefaultSlotInterval: getEnvAsInt("SHOP_DEFAULT_SLOT_INTERVAL", 30),
			BufferInBreak:       getEnvAsBool("SHOP_BUFFER_IN_BREAK", false),
			CalendarMaxDays:     getEnvAsInt("SHOP_CALENDAR_MAX_DAYS", 62),
		},
		Scheduler: SchedulerConfig{
			Enabled:     getEnvAsBool("SCHEDULER_ENABLED", true),
			CleanupSpec: getEnv("SCHEDULER_CLEANUP_SPEC", "15 3 * * *"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value := 0
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
