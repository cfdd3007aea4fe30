package out

import (
	"context"
	"time"

	"github.com/bnema/seedy/internal/domain"
)

// MessageQueue defines the contract for the source of push notifications.
// Implementations must provide competing-consumer semantics: a received
// message is hidden from other receivers until acknowledged or its lease
// expires.
type MessageQueue interface {
	// Receive long-polls for up to maxMessages messages, waiting at most wait.
	// An empty batch with a nil error means the wait elapsed.
	Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]domain.Message, error)

	// Ack removes a message from the queue.
	Ack(ctx context.Context, msg domain.Message) error
}
