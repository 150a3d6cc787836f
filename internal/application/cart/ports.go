package cart

import (
	"context"

	"github.com/Faraz011/virasat2/internal/domain/repository"
)

// TxRunner executes a function inside one DB transaction, passing
// repositories bound to that transaction. Every cart mutation runs through
// it so the stock check and the line write commit or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// EventPublisher emits storefront events to the message broker.
// Implementations must not block mutations on broker failures.
type EventPublisher interface {
	PublishJSON(routingKey string, v any) error
}

// NopPublisher discards events (used when AMQP is not configured).
type NopPublisher struct{}

// PublishJSON implements EventPublisher.
func (NopPublisher) PublishJSON(string, any) error { return nil }
