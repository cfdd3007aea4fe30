package domain

import "errors"

// Domain errors represent business-level failures shared across layers.
var (
	// Event errors
	ErrDecode            = errors.New("malformed event payload")
	ErrMissingRepository = errors.New("event has no repository name")
	ErrInvalidDigest     = errors.New("invalid image digest")
	ErrMissingDigest     = errors.New("event has no image digest")
	ErrEventIgnored      = errors.New("event is not a successful push")

	// Inventory errors
	ErrInventory             = errors.New("failed to list services")
	ErrInvalidImageReference = errors.New("invalid image reference")
	ErrServiceNotFound       = errors.New("service not found")
	ErrOrchestrator          = errors.New("orchestrator unavailable")
	ErrNotSwarmManager       = errors.New("docker engine is not a swarm manager")

	// Dispatch errors
	ErrDispatch        = errors.New("failed to update service")
	ErrVersionConflict = errors.New("service version out of date")
	ErrRegistryAuth    = errors.New("failed to obtain registry credentials")

	// Queue errors
	ErrQueue         = errors.New("message queue unavailable")
	ErrQueueNotFound = errors.New("queue not found")
	ErrAck           = errors.New("failed to acknowledge message")

	// Config errors
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrInvalidMatchMode   = errors.New("invalid match mode")
	ErrInvalidLabelFilter = errors.New("label filter must be key=value")
)
