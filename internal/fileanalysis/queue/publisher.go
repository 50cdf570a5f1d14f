package queue

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type rabbitMQPublisher struct {
	channel  *amqp.Channel
	exchange string
	logger   zerolog.Logger
}

func NewRabbitMQPublisher(channel *amqp.Channel, exchange string, logger zerolog.Logger) Publisher {
	return &rabbitMQPublisher{
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	err := p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	p.logger.Debug().
		Str("exchange", p.exchange).
		Str("routing_key", routingKey).
		Int("size", len(body)).
		Msg("Event published")

	return nil
}

// NopPublisher используется, когда RabbitMQ недоступен при старте: сервис
// продолжает работать, события просто не публикуются.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error {
	return nil
}
