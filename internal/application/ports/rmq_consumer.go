package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type RMQConsumer interface {
	Connect(dsn string) error
	Init() error
	DeliveryWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
