package timerfired

import (
	"context"
	"fmt"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/rabbitmq"
	"rewatch/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// Consumer turns delayed timer messages into wake-ups. The arm token is
// claimed only when the event loop confirms a wake-up, so a message still
// waiting for the loop on shutdown can be requeued intact.
type Consumer struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	queue    string
	registry timer.Registry
	fired    chan timer.Wakeup
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	registry timer.Registry,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if registry == nil {
		panic(e.NewNilArgumentError("registry"))
	}
	return &Consumer{
		log:      log,
		channel:  channel,
		queue:    queue,
		registry: registry,
		fired:    make(chan timer.Wakeup),
	}
}

func (c *Consumer) Fired() <-chan timer.Wakeup {
	return c.fired
}

func (c *Consumer) Consume(ctx context.Context) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(ctx, "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go c.forward(ctx, deliveries)
	return nil
}

// Confirm claims the arm token of a wake-up. Messages of replaced or
// disarmed timers fail the claim.
func (c *Consumer) Confirm(ctx context.Context, wakeup timer.Wakeup) (bool, error) {
	claimed, err := c.registry.Claim(ctx, wakeup.Name, wakeup.Token)
	if err != nil {
		return false, fmt.Errorf("could not confirm wake-up: %w", err)
	}
	if !claimed {
		c.log.Debug(ctx, "Stale timer message dropped.", logging.Entry("name", wakeup.Name))
	}
	return claimed, nil
}

func (c *Consumer) forward(ctx context.Context, deliveries <-chan amqp091.Delivery) {
	for delivery := range deliveries {
		wakeup, ok := c.decode(ctx, delivery.Body)
		if ok {
			select {
			case c.fired <- wakeup:
			case <-ctx.Done():
				c.nack(delivery)
				return
			}
		}
		c.ack(delivery)
	}
}

func (c *Consumer) decode(ctx context.Context, body []byte) (timer.Wakeup, bool) {
	message := &schema.TimerFired{}
	if err := message.Unmarshal(body); err != nil {
		c.log.Error(
			ctx,
			"Could not unmarshal timer message.",
			logging.Entry("err", err),
			logging.Entry("body", string(body)),
		)
		return timer.Wakeup{}, false
	}
	return timer.Wakeup{Name: timer.Name(message.Name), Token: message.Token}, true
}

func (c *Consumer) ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(false); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}

func (c *Consumer) nack(delivery amqp091.Delivery) {
	if err := delivery.Nack(false, true); err != nil {
		c.log.Error(context.Background(), "Could not NACK AMQP message.", logging.Entry("err", err))
	}
}
