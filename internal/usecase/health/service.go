// Package health implements the liveness and readiness checks.
package health

import (
	"context"
	"time"

	"github.com/bnema/zerowrap"

	"github.com/bnema/seedy/internal/boundaries/in"
	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/domain"
)

// maxReceiveFailures is how many consecutive failed polls are tolerated
// before the instance reports not ready.
const maxReceiveFailures = 3

var _ in.HealthService = (*Service)(nil)

// Service implements the HealthService interface.
type Service struct {
	orchestrator out.ServiceOrchestrator
	consumer     in.ConsumerMonitor
	pingTimeout  time.Duration
}

// NewService creates a new health service.
func NewService(orchestrator out.ServiceOrchestrator, consumer in.ConsumerMonitor, pingTimeout time.Duration) *Service {
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	return &Service{
		orchestrator: orchestrator,
		consumer:     consumer,
		pingTimeout:  pingTimeout,
	}
}

// Live always reports ok while the process can serve the probe.
func (s *Service) Live(context.Context) domain.HealthReport {
	return domain.HealthReport{Status: domain.HealthOK}
}

// Ready checks the orchestrator connection and the consumer's poll loop.
func (s *Service) Ready(ctx context.Context) domain.HealthReport {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Ready",
	})
	log := zerowrap.FromCtx(ctx)

	checks := []domain.HealthCheck{
		s.checkOrchestrator(ctx),
		s.checkConsumer(),
	}

	report := domain.HealthReport{Status: domain.HealthOK, Checks: checks}
	for _, c := range checks {
		if !c.OK {
			report.Status = domain.HealthDegraded
			log.Debug().Str("check", c.Name).Str("error", c.Error).Msg("readiness check failed")
		}
	}
	return report
}

func (s *Service) checkOrchestrator(ctx context.Context) domain.HealthCheck {
	check := domain.HealthCheck{Name: "orchestrator"}

	ctx, cancel := context.WithTimeout(ctx, s.pingTimeout)
	defer cancel()

	if err := s.orchestrator.Ping(ctx); err != nil {
		check.Error = err.Error()
		return check
	}
	check.OK = true
	return check
}

func (s *Service) checkConsumer() domain.HealthCheck {
	check := domain.HealthCheck{Name: "consumer"}
	status := s.consumer.Status()

	switch {
	case !status.Running:
		check.Error = "consumer not running"
	case status.ConsecutiveFailures >= maxReceiveFailures:
		check.Error = "queue receive failing"
	default:
		check.OK = true
	}
	return check
}
