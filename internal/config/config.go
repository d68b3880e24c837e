package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go-hrsuit/internal/shared/connection"
)

type Config struct {
	Port    string
	AppEnv  string
	DB      connection.PostgresConfig
	Redis   string
	Kafka   KafkaConfig
	JWT     JWTConfig
	CORS    []string
	Media   MediaConfig
	Server  ServerConfig
	Retries int

	EmployeeCodePrefix string
}

type KafkaConfig struct {
	Broker             string
	ConsumerGroup      string
	OutboxPollInterval time.Duration
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type MediaConfig struct {
	Backend         string
	Root            string
	Bucket          string
	CredentialsFile string
	MaxImageBytes   int64
}

type ServerConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads the process environment. Call godotenv.Load first to pick up a .env file.
func Load() Config {
	return Config{
		Port:   getenv("PORT", "8080"),
		AppEnv: getenv("APP_ENV", "development"),
		DB: connection.PostgresConfig{
			Host:     getenv("DB_HOST", "localhost"),
			User:     getenv("DB_USER", "postgres"),
			Password: getenv("DB_PASSWORD", "postgres"),
			Name:     getenv("DB_NAME", "hrsuit"),
			Port:     getenv("DB_PORT", "5432"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
		Redis: getenv("REDIS_ADDR", "localhost:6379"),
		Kafka: KafkaConfig{
			Broker:             getenv("KAFKA_BROKER", "localhost:9092"),
			ConsumerGroup:      getenv("KAFKA_CONSUMER_GROUP", "hrsuit-consumer"),
			OutboxPollInterval: getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		},
		JWT: JWTConfig{
			Secret:     getenv("JWT_SECRET", "change-me"),
			AccessTTL:  getDuration("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL: getDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		CORS: splitList(getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		Media: MediaConfig{
			Backend:         getenv("MEDIA_BACKEND", "local"),
			Root:            getenv("MEDIA_ROOT", "./media"),
			Bucket:          getenv("MEDIA_BUCKET", ""),
			CredentialsFile: getenv("GCS_CREDENTIALS_FILE", ""),
			MaxImageBytes:   int64(getInt("MEDIA_MAX_IMAGE_BYTES", 2<<20)),
		},
		Server: ServerConfig{
			ReadTimeout:     getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Retries:            getInt("CONNECT_RETRIES", 10),
		EmployeeCodePrefix: getenv("EMPLOYEE_CODE_PREFIX", "RGL"),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
