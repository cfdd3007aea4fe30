package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/zerowrap"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/domain"
)

const defaultDispatchConcurrency = 4

// Dispatcher issues forced redeploys for matched services.
type Dispatcher struct {
	orchestrator out.ServiceOrchestrator
	auth         out.RegistryAuthProvider
	concurrency  int
	callTimeout  time.Duration
}

// NewDispatcher creates a new Dispatcher. auth may be nil, in which case
// updates are sent without registry credentials.
func NewDispatcher(orchestrator out.ServiceOrchestrator, auth out.RegistryAuthProvider, concurrency int, callTimeout time.Duration) *Dispatcher {
	if concurrency <= 0 {
		concurrency = defaultDispatchConcurrency
	}
	return &Dispatcher{
		orchestrator: orchestrator,
		auth:         auth,
		concurrency:  concurrency,
		callTimeout:  callTimeout,
	}
}

// Dispatch force-updates one service. It returns once the orchestrator has
// accepted the update; it does not wait for convergence.
func (d *Dispatcher) Dispatch(ctx context.Context, service domain.ServiceDescriptor, target domain.UpdateTarget) domain.UpdateOutcome {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldAction:   "dispatch",
		zerowrap.FieldEntityID: service.ID,
		zerowrap.FieldService:  service.Name,
	})
	log := zerowrap.FromCtx(ctx)

	outcome := domain.UpdateOutcome{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		Image:       target.ImageSpec,
	}

	callCtx, cancel := withCallTimeout(ctx, d.callTimeout)
	defer cancel()

	start := time.Now()
	res, err := d.orchestrator.ForceUpdate(callCtx, service.ID, target.ImageSpec, target.RegistryAuth)
	if err != nil {
		outcome.Err = fmt.Errorf("%w: %s: %w", domain.ErrDispatch, service.Name, err)
		log.WrapErrWithFields(err, "service update rejected", map[string]any{"image": target.ImageSpec})
		return outcome
	}

	outcome.Succeeded = true
	if res != nil {
		outcome.Warnings = res.Warnings
	}
	for _, w := range outcome.Warnings {
		log.Warn().Str("warning", w).Msg("orchestrator warning on service update")
	}

	log.Info().
		Str("image", target.ImageSpec).
		Dur(zerowrap.FieldDuration, time.Since(start)).
		Msg("service update accepted")

	return outcome
}

// DispatchAll redeploys every matched service to ref pinned at the event's
// digest. Updates run concurrently and independently; outcomes are returned
// in the order of services.
func (d *Dispatcher) DispatchAll(ctx context.Context, event domain.ImagePushEvent, ref domain.ImageReference, services []domain.ServiceDescriptor) []domain.UpdateOutcome {
	if len(services) == 0 {
		return nil
	}

	target := domain.UpdateTarget{
		ImageSpec:    ref.WithDigest(event.Digest),
		RegistryAuth: d.registryAuth(ctx, event),
	}

	outcomes := make([]domain.UpdateOutcome, len(services))

	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for i, svc := range services {
		g.Go(func() error {
			outcomes[i] = d.Dispatch(ctx, svc, target)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// registryAuth fetches credentials once per event. Failure is not fatal:
// nodes that already hold credentials can still pull.
func (d *Dispatcher) registryAuth(ctx context.Context, event domain.ImagePushEvent) string {
	if d.auth == nil {
		return ""
	}

	callCtx, cancel := withCallTimeout(ctx, d.callTimeout)
	defer cancel()

	auth, err := d.auth.EncodedAuth(callCtx, event)
	if err != nil {
		log := zerowrap.FromCtx(ctx)
		log.Warn().Err(err).Msg("updating without registry credentials")
		return ""
	}
	return auth
}
