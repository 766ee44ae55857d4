package db

import (
	"github.com/go-redis/redis/v8"

	"github.com/agendahub/scheduler/internal/config"
)

func NewRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
}
