package events

import (
	"context"

	"github.com/jess232017/wallet-service/internal/core/domain"
)

// Publisher emits domain events for downstream consumers.
// Publishing happens after commit and is best-effort: a failure must never
// undo or fail the committed operation.
type Publisher interface {
	PublishTransactionCompleted(ctx context.Context, event domain.TransactionCompleted) error
}
