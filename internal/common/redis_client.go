package common

import (
	"context"
	"time"

	"charlesfind/safaritracker/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(cfg config.RedisConfig, logger *zap.Logger) *redis.Client {
	logger.Info("Initializing Redis client", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to ping Redis", zap.Error(err))
		return client // Still return the client, connection pool will try to reconnect
	}

	logger.Info("Successfully connected to Redis")
	return client
}
