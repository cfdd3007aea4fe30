// Package out defines output ports (interfaces) for infrastructure.
// These interfaces define the contract between use cases and driven adapters
// (Docker Swarm, SQS, ECR, etc.).
package out

import (
	"context"

	"github.com/bnema/seedy/internal/domain"
)

// ServiceOrchestrator defines the contract for the cluster running services.
// This interface abstracts the underlying orchestrator (Docker Swarm today).
type ServiceOrchestrator interface {
	// ListServices returns every running service, optionally restricted to
	// those carrying the filter label.
	ListServices(ctx context.Context, filter domain.LabelFilter) ([]domain.ServiceRecord, error)

	// ForceUpdate redeploys a service with the given image spec without
	// otherwise changing its configuration. registryAuth is an encoded
	// registry credential, or "" to let the orchestrator use its own.
	// It returns once the orchestrator has accepted the update.
	ForceUpdate(ctx context.Context, serviceID, imageSpec, registryAuth string) (*UpdateResult, error)

	// Ping verifies the orchestrator is reachable and able to manage services.
	Ping(ctx context.Context) error
}

// UpdateResult holds what the orchestrator reported when accepting an update.
type UpdateResult struct {
	Warnings []string
}
