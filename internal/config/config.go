package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// Config holds everything the process reads from its environment.
type Config struct {
	Port      int
	JWTSecret string
	JWTTTL    time.Duration

	CardRateLimit  int           // card creations per window per client
	CardRateWindow time.Duration
	AuthRateLimit  int           // auth attempts per window per client
	AuthRateWindow time.Duration

	DB DBConfig
}

// Load reads the configuration from the environment (a .env file is picked
// up automatically), applying defaults for anything unset.
func Load() Config {
	return Config{
		Port:      envInt("PORT", 8080),
		JWTSecret: envString("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:    time.Duration(envInt("JWT_TTL_MINUTES", 60)) * time.Minute,

		CardRateLimit:  envInt("CARD_RATE_LIMIT", 6),
		CardRateWindow: time.Second,
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: time.Minute,

		DB: DBConfig{
			Host:     envString("BOARD_DB_HOST", "localhost"),
			Port:     envString("BOARD_DB_PORT", "5432"),
			Username: envString("BOARD_DB_USERNAME", "postgres"),
			Password: envString("BOARD_DB_PASSWORD", "postgres"),
			Database: envString("BOARD_DB_DATABASE", "board"),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default",
			slog.String("key", key), slog.String("value", v), slog.Int("default", fallback))
		return fallback
	}
	return n
}
