package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                string
	Port               string
	DatabaseURL        string // postgres:// DSN, or a SQLite file path for local runs
	DBMaxOpenConns     int
	RedisURL           string // optional; health counters are skipped when empty
	JWTSecret          string
	BcryptCost         int
	UploadDir          string
	BodyLimitMB        int
	CORSAllowedOrigins []string // empty allows every origin
	HealthAdminKey     string
	LogLevel           string
}

const devJWTSecret = "nearvisit-dev-secret"

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "nearvisit.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("BODY_LIMIT_MB", 25)
	v.SetDefault("LOG_LEVEL", "info")

	env := v.GetString("APP_ENV")
	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		if env == "production" {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		secret = devJWTSecret
	}

	return &Config{
		Env:                env,
		Port:               v.GetString("PORT"),
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		RedisURL:           v.GetString("REDIS_URL"),
		JWTSecret:          secret,
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		UploadDir:          v.GetString("UPLOAD_DIR"),
		BodyLimitMB:        v.GetInt("BODY_LIMIT_MB"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		HealthAdminKey:     v.GetString("HEALTH_ADMIN_KEY"),
		LogLevel:           v.GetString("LOG_LEVEL"),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
