package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	apperrors "github.com/xiebiao/locallibrary/pkg/errors"
)

// FlashStore 一次性提示消息(Post/Redirect/Get)
// 设计说明：
// 1. 表单提交成功后写入"Author created"之类的提示，重定向后的下一个页面读出并删除
// 2. Key设计：flash:{session_id}，List结构，按写入顺序展示
// 3. client为nil时所有操作为空操作
type FlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFlashStore 创建Flash存储
func NewFlashStore(client *redis.Client, cfg *config.Config) *FlashStore {
	ttl := cfg.Redis.FlashTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FlashStore{client: client, ttl: ttl}
}

func flashKey(sessionID string) string {
	return fmt.Sprintf("flash:%s", sessionID)
}

// Push 追加一条提示，并刷新过期时间
func (s *FlashStore) Push(ctx context.Context, sessionID, message string) error {
	if s.client == nil || sessionID == "" {
		return nil
	}

	key := flashKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "保存提示消息失败")
	}
	return nil
}

// Pop 读出全部提示并删除(MULTI内执行，只会被展示一次)
func (s *FlashStore) Pop(ctx context.Context, sessionID string) ([]string, error) {
	if s.client == nil || sessionID == "" {
		return nil, nil
	}

	key := flashKey(sessionID)
	pipe := s.client.TxPipeline()
	lrange := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, apperrors.Wrap(err, "读取提示消息失败")
	}
	return lrange.Val(), nil
}
