package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gigflow/gigflow-backend/config"
	"github.com/gigflow/gigflow-backend/internal/storage/postgres"
)

func OpenDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	return postgres.NewConnection(cfg)
}

// OpenRedis returns nil when no address is configured. An unreachable
// server is logged but not fatal: the category cache degrades to misses
// and health reports the cache as down.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		log.Println("Redis disabled: REDIS_ADDR is empty")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		log.Printf("Warning: redis ping failed at %s: %v", cfg.Addr, err)
	}
	return client
}
