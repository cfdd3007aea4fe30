package in

import (
	"context"

	"github.com/bnema/seedy/internal/domain"
)

// HealthService reports liveness and readiness of the process.
type HealthService interface {
	// Live reports whether the process is up. It performs no I/O.
	Live(ctx context.Context) domain.HealthReport

	// Ready reports whether the consumer can do useful work: the
	// orchestrator answers and the queue is being polled.
	Ready(ctx context.Context) domain.HealthReport
}

// ConsumerMonitor exposes the consumer's polling state.
type ConsumerMonitor interface {
	Status() domain.ConsumerStatus
}
