package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host        string
	User        string
	Password    string
	Name        string
	Port        string
	SSLMode     string
	AutoMigrate bool
}

type Config struct {
	AppEnv    string
	Port      string
	JWTSecret string

	AdminUsername string
	AdminPassword string

	DB DBConfig

	RedisAddr string

	KafkaBroker        string
	KafkaGroupID       string
	OutboxPollInterval time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxRetries   int
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "3000"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    os.Getenv("DB_PASSWORD"),
			Name:        getEnv("DB_NAME", "hrm"),
			Port:        getEnv("DB_PORT", "5432"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getBool("DB_AUTO_MIGRATE", false),
		},
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBroker:        os.Getenv("KAFKA_BROKER"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "go-hrm-change-feed"),
		OutboxPollInterval: getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		ReadTimeout:        getDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:       getDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:        getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		MaxRetries:         getInt("CONNECT_MAX_RETRIES", 5),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
