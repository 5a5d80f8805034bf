// eventlog 订阅目录变更事件并写入日志
//
// 用法：
//
//	LIBRARY_MQ_ENABLED=true go run ./cmd/eventlog
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/locallibrary/internal/infrastructure/config"
	"github.com/xiebiao/locallibrary/internal/infrastructure/events"
	"github.com/xiebiao/locallibrary/pkg/logger"
	"github.com/xiebiao/locallibrary/pkg/metrics"
	"github.com/xiebiao/locallibrary/pkg/mq"
)

// 订阅全部目录事件
var routingKeys = []string{"catalog.#"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})

	if !cfg.MQ.Enabled {
		log.Fatal().Msg("mq.enabled=false，没有可订阅的事件")
	}
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	consumer, err := mq.NewConsumer(cfg.MQ.URL,
		mq.ExchangeOptions{Name: cfg.MQ.Exchange, Kind: cfg.MQ.ExchangeType},
		cfg.MQ.Queue, routingKeys)
	if err != nil {
		log.Fatal().Err(err).Msg("创建消费者失败")
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			log.Error().Err(err).Msg("关闭消费者失败")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Consume(ctx, handle(cfg.MQ.Queue)); err != nil {
		log.Error().Err(err).Msg("消费中断")
	}
}

// handle 记录一条事件
// 消息体无法解析时直接丢弃(返回nil)，避免坏消息反复重新入队
func handle(queue string) mq.Handler {
	return func(ctx context.Context, d mq.Delivery) error {
		start := time.Now()

		var ev events.Event
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			log.Warn().Err(err).Str("routing_key", d.RoutingKey).Msg("丢弃无法解析的事件")
			recordConsumed(queue, "failure", start)
			return nil
		}

		log.Info().
			Str("event_id", ev.ID).
			Str("type", ev.Type).
			Str("entity", ev.Entity).
			Str("action", ev.Action).
			Str("entity_id", ev.EntityID).
			Time("occurred_at", ev.OccurredAt).
			Msg("目录事件")
		recordConsumed(queue, "success", start)
		return nil
	}
}

func recordConsumed(queue, result string, start time.Time) {
	if metrics.MessagesConsumedTotal == nil {
		return
	}
	metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{"queue": queue, "result": result})
	metrics.ObserveHistogram(metrics.MessageProcessingDuration, time.Since(start).Seconds())
}
