package rabbitmq

import (
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	QueueName           = "entry-service.payments"
	PaymentConfirmedKey = "payment.confirmed"
	ConsumerTag         = "entry-service"

	prefetchCount = 10
)

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

func NewConsumer(url string, logger *slog.Logger) (*Consumer, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		closeAll(conn, ch)
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	if err := ch.QueueBind(q.Name, PaymentConfirmedKey, ExchangeName, false, nil); err != nil {
		closeAll(conn, ch)
		return nil, fmt.Errorf("rabbitmq queue bind: %w", err)
	}

	if err := ch.Qos(prefetchCount, 0, false); err != nil {
		closeAll(conn, ch)
		return nil, fmt.Errorf("rabbitmq qos: %w", err)
	}

	return &Consumer{conn: conn, channel: ch, logger: logger}, nil
}

func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(
		QueueName,
		ConsumerTag,
		false, // manual ack: the payment consumer settles each delivery
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}

	c.logger.Info("consuming from queue", "queue", QueueName, "routing_key", PaymentConfirmedKey)
	return msgs, nil
}

// Cancel stops new deliveries. Already delivered messages stay on the channel
// until it is drained, after which the channel is closed.
func (c *Consumer) Cancel() error {
	if err := c.channel.Cancel(ConsumerTag, false); err != nil {
		return fmt.Errorf("rabbitmq cancel: %w", err)
	}
	return nil
}

func (c *Consumer) Close() {
	closeAll(c.conn, c.channel)
}
