package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	LogLevel    string
	SwaggerHost string

	DBDriver    string
	DatabaseDSN string
	ResetDB     bool

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret    string
	JWTExpiresIn time.Duration
	CookieSecure bool

	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	Storage StorageConfig

	KafkaBrokers []string

	SeedAdminEmail    string
	SeedAdminPassword string
	SeedAdminName     string
}

// StorageConfig selects and configures the image host.
type StorageConfig struct {
	Provider  string
	LocalPath string
	PublicURL string
	Root      string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		ServerPort:  v.GetString("SERVER_PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		SwaggerHost: v.GetString("SWAGGER_HOST"),

		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		ResetDB:     v.GetBool("RESET_DB"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		RedisDB:   v.GetInt("REDIS_DB"),
		RedisPass: v.GetString("REDIS_PASSWORD"),

		JWTSecret:    v.GetString("JWT_SECRET"),
		JWTExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
		CookieSecure: v.GetBool("COOKIE_SECURE"),

		CORSOrigins:       splitList(v.GetString("CORS_ORIGINS")),
		RateLimitRequests: v.GetInt("RATE_LIMIT_REQUESTS"),
		RateLimitWindow:   v.GetDuration("RATE_LIMIT_WINDOW"),

		Storage: StorageConfig{
			Provider:    strings.ToLower(v.GetString("STORAGE_PROVIDER")),
			LocalPath:   v.GetString("STORAGE_LOCAL_PATH"),
			PublicURL:   strings.TrimRight(v.GetString("STORAGE_PUBLIC_URL"), "/"),
			Root:        strings.Trim(v.GetString("STORAGE_ROOT"), "/"),
			S3Endpoint:  v.GetString("S3_ENDPOINT"),
			S3Region:    v.GetString("S3_REGION"),
			S3Bucket:    v.GetString("S3_BUCKET"),
			S3AccessKey: v.GetString("S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("S3_SECRET_KEY"),
		},

		KafkaBrokers: splitList(v.GetString("KAFKA_BROKERS")),

		SeedAdminEmail:    v.GetString("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
		SeedAdminName:     v.GetString("SEED_ADMIN_NAME"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DATABASE_DSN", "user:password@tcp(localhost:3306)/bakehouse?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_EXPIRES_IN", "168h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("STORAGE_LOCAL_PATH", "./data/uploads")
	v.SetDefault("STORAGE_PUBLIC_URL", "http://localhost:8080/uploads")
	v.SetDefault("STORAGE_ROOT", "bakehouse")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("SEED_ADMIN_EMAIL", "admin@bakehouse.local")
	v.SetDefault("SEED_ADMIN_PASSWORD", "admin123")
	v.SetDefault("SEED_ADMIN_NAME", "Bakehouse Admin")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
