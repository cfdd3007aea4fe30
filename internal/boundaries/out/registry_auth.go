package out

import (
	"context"

	"github.com/bnema/seedy/internal/domain"
)

// RegistryAuthProvider defines the contract for obtaining pull credentials
// for the registry an event's image lives in.
type RegistryAuthProvider interface {
	// EncodedAuth returns a base64url JSON registry auth header value suitable
	// for orchestrator update calls.
	EncodedAuth(ctx context.Context, event domain.ImagePushEvent) (string, error)
}
