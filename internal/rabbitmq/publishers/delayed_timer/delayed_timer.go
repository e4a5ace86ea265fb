package delayedtimer

import (
	"context"
	e "rewatch/internal/core/domain/errors"
	"rewatch/internal/core/domain/logging"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/rabbitmq/schema"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp091.Publishing,
	) error
}

// RabbitMQ arms timers as messages on a delayed-message exchange. A
// published message cannot be withdrawn, so every arm registers a fresh
// token and the consumer drops messages whose token is no longer current.
type RabbitMQ struct {
	log        logging.Logger
	publisher  Publisher
	registry   timer.Registry
	exchange   string
	routingKey string
	now        func() time.Time
	newToken   func() string
}

func NewRabbitMQ(
	log logging.Logger,
	publisher Publisher,
	registry timer.Registry,
	exchange string,
	routingKey string,
	now func() time.Time,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if registry == nil {
		panic(e.NewNilArgumentError("registry"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{
		log:        log,
		publisher:  publisher,
		registry:   registry,
		exchange:   exchange,
		routingKey: routingKey,
		now:        now,
		newToken:   uuid.NewString,
	}
}

func (s *RabbitMQ) Arm(ctx context.Context, name timer.Name, at time.Time) error {
	message := schema.TimerFired{Name: string(name), Token: s.newToken(), At: at}
	body, err := message.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("name", name))
		return err
	}

	// Registering first makes any earlier message for this name stale.
	if err := s.registry.Register(ctx, name, message.Token); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("name", name))
		return err
	}

	delay := at.Sub(s.now())
	if delay < 0 {
		delay = 0
	}
	err = s.publisher.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		Headers:      amqp091.Table{"x-delay": delay.Milliseconds()},
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("name", name))
		return err
	}
	s.log.Debug(
		ctx,
		"Timer message published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("name", name),
		logging.Entry("delay", delay),
	)
	return nil
}

func (s *RabbitMQ) Disarm(ctx context.Context, name timer.Name) error {
	if err := s.registry.Revoke(ctx, name); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("name", name))
		return err
	}
	return nil
}
