package rmqconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/supanut9/store-it/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

const routingKey = "path.revalidate"

var ErrBadMessage = errors.New("bad revalidation message")

// Invalidator drops whatever was cached for a path.
type Invalidator interface {
	Invalidate(path string)
}

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	inv        Invalidator
	queue      string
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

type message struct {
	Action string `json:"event_action"`
	Path   string `json:"path"`
}

// New builds a consumer with its own queue, so every instance sees every
// revalidation.
func New(cfg config.MQ, logger *zap.Logger, inv Invalidator) *Consumer {
	return &Consumer{
		cfg:   cfg,
		log:   logger,
		inv:   inv,
		queue: cfg.QueueName + "." + uuid.NewString(),
	}
}

func (c *Consumer) Connect(dsn string) error {
	var err error
	c.conn, err = amqp091.Dial(dsn)
	if err != nil {
		c.conn = nil
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	c.log.Info("rabbitmq consumer connected successfully", zap.String("queue", c.queue))

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.queue,
		false,
		true,
		true,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := c.chConsume.QueueBind(
		c.queue,
		routingKey,
		c.cfg.Exchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue bind %s: %w", routingKey, err)
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var err error
	c.chDelivery, err = c.chConsume.Consume(
		c.queue,
		"",
		true,
		true,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				c.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			_ = c.chConsume.Close()
			return
		}
	}
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	if msg.RoutingKey != routingKey {
		return fmt.Errorf("%w: routing key %q", ErrBadMessage, msg.RoutingKey)
	}

	var m message
	if err := json.Unmarshal(msg.Body, &m); err != nil {
		return fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if m.Path == "" {
		return fmt.Errorf("%w: empty path", ErrBadMessage)
	}

	c.inv.Invalidate(m.Path)
	c.log.Debug("path revalidated", zap.String("path", m.Path), zap.String("message_id", msg.MessageId))

	return nil
}

func (c *Consumer) GetConn() *amqp091.Connection { return c.conn }
