// Package in defines input ports (interfaces) for use cases.
// These interfaces define the contract between driving adapters (queue
// consumer, CLI) and the business logic (use cases).
package in

import (
	"context"

	"github.com/bnema/seedy/internal/domain"
)

// Reconciler runs one message through decode, inventory, match and dispatch.
type Reconciler interface {
	// Process never returns an error: every failure is recorded in the
	// result so the caller can acknowledge the message unconditionally.
	Process(ctx context.Context, msg domain.Message) domain.ReconcileResult
}

// EventDecoder turns a raw notification payload into an image push event.
type EventDecoder interface {
	Decode(raw []byte) (domain.ImagePushEvent, error)
}
