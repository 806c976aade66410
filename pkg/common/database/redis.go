package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/config"
	"github.com/Aditya-J07/Nuro-Beats/pkg/common/logger"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis dials redis. A failed ping is logged but not fatal: callers
// that only use redis as a cache degrade to cache-miss behaviour.
func ConnectRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.WithError(err).Error("Failed to connect to Redis")
	} else {
		logger.Log.Info("Connected to Redis")
	}

	return client
}
