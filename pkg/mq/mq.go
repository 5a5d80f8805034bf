// Package mq 基于RabbitMQ的消息发布/订阅
//
// 目录服务把实体变更事件发布到Topic Exchange(默认catalog.events)，
// routing key形如catalog.author.created；eventlog进程按catalog.#订阅并落日志。
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// ExchangeOptions Exchange声明参数
type ExchangeOptions struct {
	Name string
	Kind string // direct | topic | fanout
}

// Publisher 消息发布者
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher 连接RabbitMQ并声明持久化Exchange
func NewPublisher(url string, ex ExchangeOptions) (*Publisher, error) {
	conn, channel, err := open(url, ex)
	if err != nil {
		return nil, err
	}

	log.Info().Str("exchange", ex.Name).Str("type", ex.Kind).Msg("✓ 消息发布者已创建")
	return &Publisher{conn: conn, channel: channel, exchange: ex.Name}, nil
}

// Publish 把message序列化为JSON发布到routingKey
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	msg, err := newPublishing(message, time.Now())
	if err != nil {
		return err
	}

	if err := p.channel.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	log.Debug().Str("routing_key", routingKey).RawJSON("body", msg.Body).Msg("消息已发布")
	return nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	return closeAll(p.channel, p.conn)
}

// newPublishing 构造持久化JSON消息
func newPublishing(message interface{}, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("消息序列化失败: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
	}, nil
}

// Delivery 消费到的消息
type Delivery struct {
	RoutingKey string
	Body       []byte
	Timestamp  time.Time
}

// Handler 消息处理函数，返回错误时消息重新入队
type Handler func(ctx context.Context, d Delivery) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewConsumer 声明持久化Queue并按routingKeys绑定到Exchange
// Topic Exchange支持通配符：* 匹配一个单词，# 匹配零个或多个单词
func NewConsumer(url string, ex ExchangeOptions, queue string, routingKeys []string) (*Consumer, error) {
	conn, channel, err := open(url, ex)
	if err != nil {
		return nil, err
	}

	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, key := range routingKeys {
		if err := channel.QueueBind(q.Name, key, ex.Name, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("绑定Queue失败(%s): %w", key, err)
		}
	}

	log.Info().Str("queue", q.Name).Strs("routing_keys", routingKeys).Msg("✓ 消息消费者已创建")
	return &Consumer{conn: conn, channel: channel, queue: q.Name}, nil
}

// Consume 阻塞消费直到ctx取消
// 手动确认：handler成功Ack，失败Nack并重新入队
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	// 每次只取1条，处理完再取下一条
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	log.Info().Str("queue", c.queue).Msg("开始消费消息")

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("queue", c.queue).Msg("消费者退出")
			return nil

		case msg, ok := <-msgs:
			if !ok {
				return errors.New("消息Channel已关闭")
			}

			d := Delivery{RoutingKey: msg.RoutingKey, Body: msg.Body, Timestamp: msg.Timestamp}
			if err := handler(ctx, d); err != nil {
				log.Error().Err(err).Str("routing_key", msg.RoutingKey).Msg("消息处理失败，重新入队")
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

// open 连接、创建Channel、声明Exchange
func open(url string, ex ExchangeOptions) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	// durable=true, autoDelete=false, internal=false, noWait=false
	if err := channel.ExchangeDeclare(ex.Name, ex.Kind, true, false, false, false, nil); err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("声明Exchange失败: %w", err)
	}
	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	var errs []error
	if channel != nil {
		errs = append(errs, channel.Close())
	}
	if conn != nil {
		errs = append(errs, conn.Close())
	}
	return errors.Join(errs...)
}
