// Package events 目录变更事件发布
//
// 每次成功的增删改发布一条事件到RabbitMQ，routing key为catalog.<entity>.<action>。
// 发布是尽力而为的：失败只记日志和指标，不影响请求结果；
// 连续失败时熔断器打开，后续事件直接丢弃，不再等待Broker超时。
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/locallibrary/internal/application/catalog"
	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/pkg/circuitbreaker"
	"github.com/xiebiao/locallibrary/pkg/metrics"
	"github.com/xiebiao/locallibrary/pkg/mq"
)

// publishTimeout 单条事件发布的最长等待
const publishTimeout = 2 * time.Second

// Event 目录变更事件(消息体)
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"` // catalog.author.created
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey 事件的routing key
func RoutingKey(entity, action string) string {
	return fmt.Sprintf("catalog.%s.%s", entity, action)
}

// Broker 消息发布接口(mq.Publisher实现)
type Broker interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Close() error
}

var _ catalog.EventPublisher = (*Publisher)(nil)

// Publisher 事件发布者，broker为nil时为空操作
type Publisher struct {
	broker  Broker
	breaker *circuitbreaker.CircuitBreaker
	now     func() time.Time
}

// NewPublisher 根据配置创建发布者
// mq.enabled=false时返回空操作的Publisher
func NewPublisher(cfg *config.Config) (*Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		log.Info().Msg("消息队列未启用，目录事件不发布")
		return &Publisher{}, func() {}, nil
	}

	broker, err := mq.NewPublisher(cfg.MQ.URL, mq.ExchangeOptions{Name: cfg.MQ.Exchange, Kind: cfg.MQ.ExchangeType})
	if err != nil {
		return nil, nil, err
	}

	p := NewBrokerPublisher(broker)
	cleanup := func() {
		if err := broker.Close(); err != nil {
			log.Error().Err(err).Msg("关闭消息发布者失败")
		}
	}
	return p, cleanup, nil
}

// NewBrokerPublisher 用给定Broker创建发布者(带熔断)
func NewBrokerPublisher(broker Broker) *Publisher {
	breaker := circuitbreaker.NewCircuitBreaker("catalog-events", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: readyToTrip,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("熔断器状态变化")
			metrics.SetBreakerState(name, float64(to))
		},
	})
	return &Publisher{broker: broker, breaker: breaker, now: time.Now}
}

// readyToTrip 连续失败3次，或窗口内至少10次请求且失败率过半时熔断
func readyToTrip(c circuitbreaker.Counts) bool {
	if c.ConsecutiveFailures >= 3 {
		return true
	}
	return c.Requests >= 10 && c.FailureRate() > 0.5
}

// Publish 发布一条事件，不返回错误
func (p *Publisher) Publish(ctx context.Context, entity, action, entityID string) {
	if p == nil || p.broker == nil {
		return
	}

	ev := Event{
		ID:         uuid.NewString(),
		Type:       RoutingKey(entity, action),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: p.now().UTC(),
	}

	// 请求结束(重定向)后ctx可能被取消，事件仍然要发出去
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := p.breaker.Execute(func() error {
		return p.broker.Publish(ctx, ev.Type, ev)
	})

	switch {
	case err == nil:
		metrics.RecordPublish(ev.Type, "success")
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.RecordPublish(ev.Type, "rejected")
		log.Debug().Str("routing_key", ev.Type).Msg("熔断器打开，丢弃事件")
	default:
		metrics.RecordPublish(ev.Type, "failure")
		log.Warn().Err(err).Str("routing_key", ev.Type).Str("entity_id", entityID).Msg("发布目录事件失败")
	}
}
