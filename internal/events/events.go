// Package events публикует события авторизации витрины.
// Публикация выполняется по принципу best effort: ошибки логируются
// и никогда не влияют на результат входа или регистрации.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/storefront/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/storefront/internal/lib/sl"
)

// Типы событий. Используются как routing key.
const (
	TypeUserRegistered = "user.registered"
	TypeUserLoggedIn   = "user.logged_in"
	TypeUserLoggedOut  = "user.logged_out"
)

// Event событие авторизации посетителя.
type Event struct {
	Type       string    `json:"type"`
	Email      string    `json:"email,omitempty"`
	VisitorID  string    `json:"visitor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher отправляет события.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Nop не отправляет ничего. Используется, когда RabbitMQ не настроен.
type Nop struct{}

// Publish ничего не делает.
func (Nop) Publish(context.Context, Event) {}

// AMQPPublisher публикует события в exchange RabbitMQ.
type AMQPPublisher struct {
	log      *slog.Logger
	ch       rabbitmq.Channel
	exchange string
}

// NewAMQPPublisher создаёт издателя поверх канала ch.
func NewAMQPPublisher(log *slog.Logger, ch rabbitmq.Channel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{log: log, ch: ch, exchange: exchange}
}

// Publish отправляет событие с ключом, равным его типу.
func (p *AMQPPublisher) Publish(ctx context.Context, e Event) {
	const op = "events.Publish"
	if ctx.Err() != nil {
		return
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if err := rabbitmq.PublishMessage(p.ch, p.exchange, e.Type, e); err != nil {
		p.log.Warn("failed to publish auth event",
			slog.String("op", op),
			slog.String("type", e.Type),
			sl.Err(err),
		)
	}
}
