package database

import (
	"context"
	"log"
	"time"

	"roomops/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the change-feed backend. Returns nil when no
// address is configured or the server is unreachable; the feed degrades to
// publish no-ops and the mirrors rely on periodic refresh alone.
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		log.Printf("[redis] REDIS_ADDR not set; change feed disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] ping %s failed: %v; change feed disabled", cfg.Addr, err)
		_ = client.Close()
		return nil
	}
	return client
}
