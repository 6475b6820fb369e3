package noop

import (
	"context"

	"github.com/jess232017/wallet-service/internal/core/domain"
	portsevents "github.com/jess232017/wallet-service/internal/core/ports/events"
)

// Publisher discards all events. Used when no broker is configured.
type Publisher struct{}

func NewPublisher() *Publisher { return &Publisher{} }

var _ portsevents.Publisher = (*Publisher)(nil)

func (*Publisher) PublishTransactionCompleted(ctx context.Context, event domain.TransactionCompleted) error {
	return nil
}
