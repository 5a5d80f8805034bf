package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
)

// NewClient 创建Redis客户端
// 设计说明：
// 1. redis.enabled=false时返回nil，依赖Redis的组件退化为空操作
// 2. 配置连接池参数（PoolSize、MinIdleConns）和超时参数
// 3. 启动时Ping一次，连不上直接失败
func NewClient(cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Redis.Enabled {
		log.Info().Msg("Redis未启用，Flash消息不可用")
		return nil, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Info().Str("addr", cfg.Redis.Addr()).Msg("✓ Redis连接成功")
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("关闭Redis连接失败")
		}
	}
	return client, cleanup, nil
}
