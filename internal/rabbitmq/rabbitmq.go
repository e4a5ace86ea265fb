package rabbitmq

import (
	"context"
	"fmt"
	"rewatch/internal/core/domain/logging"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection wraps amqp.Connection and redials when the broker drops it.
type Connection struct {
	*amqp.Connection
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	connection := &Connection{Connection: conn, log: log}
	go connection.watch(url)
	return connection, nil
}

func (c *Connection) watch(url string) {
	ctx := context.Background()
	for {
		reason, ok := <-c.Connection.NotifyClose(make(chan *amqp.Error))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}
		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", *reason))
		for {
			time.Sleep(reconnectDelay)
			conn, err := amqp.Dial(url)
			if err == nil {
				c.Connection = conn
				c.log.Info(ctx, "RabbitMQ reconnect success.")
				break
			}
			c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
		}
	}
}

// Channel opens a channel that is recreated after unexpected closes.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	channel := &Channel{Channel: ch, log: c.log}
	go channel.watch(c)
	return channel, nil
}

type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

func (ch *Channel) watch(c *Connection) {
	ctx := context.Background()
	for {
		reason, ok := <-ch.Channel.NotifyClose(make(chan *amqp.Error))
		if !ok || ch.IsClosed() {
			ch.Close()
			return
		}
		ch.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", *reason))
		for {
			time.Sleep(reconnectDelay)
			recreated, err := c.Connection.Channel()
			if err == nil {
				ch.log.Info(ctx, "Channel recreate success.")
				ch.Channel = recreated
				break
			}
			ch.log.Error(ctx, "Channel recreate failed.", logging.Entry("err", err))
		}
	}
}

// IsClosed reports whether Close was called explicitly.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.Channel.Close()
}

// DeclareDelayedQueue declares a delayed-message exchange and a durable queue
// bound to it with the queue name as routing key.
func (ch *Channel) DeclareDelayedQueue(exchange string, queue string) error {
	err := ch.ExchangeDeclare(
		exchange,
		"x-delayed-message",
		true,
		false,
		false,
		false,
		amqp.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		return fmt.Errorf("could not declare exchange %s: %w", exchange, err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("could not declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
		return fmt.Errorf("could not bind queue %s: %w", queue, err)
	}
	return nil
}

// Consume keeps consuming across channel recreation until the channel is
// closed explicitly.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		ctx := context.Background()
		for {
			d, err := ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(ctx, "Consume failed.", logging.Entry("err", err))
				time.Sleep(reconnectDelay)
				continue
			}
			for msg := range d {
				deliveries <- msg
			}

			// the closed flag may be set shortly after the delivery channel ends
			time.Sleep(reconnectDelay)
			if ch.IsClosed() {
				ch.log.Info(ctx, "Channel is closed, stop consuming.", logging.Entry("queue", queue))
				close(deliveries)
				return
			}
		}
	}()

	return deliveries, nil
}
