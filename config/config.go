package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Broker   BrokerConfig
	Rooms    RoomsConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the change-feed pub/sub connection. An empty Addr
// disables the feed: publishes are skipped and subscribers never start.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type BrokerConfig struct {
	URL string
}

type RoomsConfig struct {
	Timezone           string
	RefreshInterval    time.Duration
	StatusMessageLimit int
}

func Load() *Config {
	// .env is optional; deployments normally set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}
	return &Config{
		Server: ServerConfig{
			Port:         getenv("SERVER_PORT", "8087"),
			Env:          getenv("ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DB_DSN", "root:@tcp(localhost:3306)/roomops?charset=utf8mb4&parseTime=True&loc=UTC"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Broker: BrokerConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},
		Rooms: RoomsConfig{
			Timezone:           getenv("TIMEZONE", "UTC"),
			RefreshInterval:    time.Duration(getenvInt("ROOM_REFRESH_INTERVAL", 60)) * time.Second,
			StatusMessageLimit: 500,
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
