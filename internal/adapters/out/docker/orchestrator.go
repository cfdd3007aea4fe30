package docker

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/zerowrap"
	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/filters"

	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/domain"
)

var _ out.ServiceOrchestrator = (*Orchestrator)(nil)

// Orchestrator implements out.ServiceOrchestrator against a swarm manager.
type Orchestrator struct {
	api swarmAPI
}

// NewOrchestrator creates an orchestrator. An empty host uses DOCKER_HOST
// or the default socket.
func NewOrchestrator(host string) (*Orchestrator, error) {
	cli, err := newEngineClient(host)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &Orchestrator{api: cli}, nil
}

// Close releases the underlying client.
func (o *Orchestrator) Close() error {
	return o.api.close()
}

// Ping checks that the engine is reachable and is a swarm manager.
func (o *Orchestrator) Ping(ctx context.Context) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "docker",
		zerowrap.FieldAction:  "Ping",
	})
	log := zerowrap.FromCtx(ctx)

	if err := o.api.ping(ctx); err != nil {
		log.Error().Err(err).Msg("Docker ping failed")
		return fmt.Errorf("%w: %w", domain.ErrOrchestrator, err)
	}

	manager, err := o.api.isSwarmManager(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to read swarm state")
		return fmt.Errorf("%w: %w", domain.ErrOrchestrator, err)
	}
	if !manager {
		return domain.ErrNotSwarmManager
	}
	return nil
}

// ListServices lists swarm services, optionally restricted to a label.
func (o *Orchestrator) ListServices(ctx context.Context, filter domain.LabelFilter) ([]domain.ServiceRecord, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "docker",
		zerowrap.FieldAction:  "ListServices",
		"filter":              filter.String(),
	})
	log := zerowrap.FromCtx(ctx)

	args := filters.NewArgs()
	if !filter.IsZero() {
		args.Add("label", filter.String())
	}

	services, err := o.api.listServices(ctx, args)
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")
		return nil, fmt.Errorf("list services: %w", err)
	}

	records := make([]domain.ServiceRecord, 0, len(services))
	for _, svc := range services {
		cs := svc.Spec.TaskTemplate.ContainerSpec
		if cs == nil {
			// plugin and network-attachment services have no image
			continue
		}
		records = append(records, domain.ServiceRecord{
			ID:        svc.ID,
			Name:      svc.Spec.Name,
			ImageSpec: cs.Image,
			Labels:    svc.Spec.Labels,
		})
	}

	return records, nil
}

// ForceUpdate sets the service's container image and bumps its force
// counter so every task is recreated. Everything else in the service spec is
// submitted unchanged, against the version just inspected.
func (o *Orchestrator) ForceUpdate(ctx context.Context, serviceID, imageSpec, registryAuth string) (*out.UpdateResult, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:    "adapter",
		zerowrap.FieldAdapter:  "docker",
		zerowrap.FieldAction:   "ForceUpdate",
		zerowrap.FieldEntityID: serviceID,
		"image":                imageSpec,
	})
	log := zerowrap.FromCtx(ctx)

	svc, err := o.api.inspectService(ctx, serviceID)
	if err != nil {
		log.Error().Err(err).Msg("failed to inspect service")
		return nil, fmt.Errorf("inspect service: %w", classify(err))
	}

	spec := svc.Spec
	if spec.TaskTemplate.ContainerSpec == nil {
		return nil, fmt.Errorf("service %s has no container spec", serviceID)
	}

	previous := spec.TaskTemplate.ContainerSpec.Image
	spec.TaskTemplate.ContainerSpec.Image = imageSpec
	spec.TaskTemplate.ForceUpdate++

	warnings, err := o.api.updateService(ctx, serviceID, svc.Version, spec, registryAuth)
	if err != nil {
		log.Error().Err(err).Msg("failed to update service")
		return nil, fmt.Errorf("update service: %w", classify(err))
	}

	log.Debug().
		Str("previous_image", previous).
		Uint64("version", svc.Version.Index).
		Bool("with_auth", registryAuth != "").
		Msg("service update submitted")

	return &out.UpdateResult{Warnings: warnings}, nil
}

// classify maps engine errors onto domain errors.
func classify(err error) error {
	switch {
	case cerrdefs.IsNotFound(err):
		return fmt.Errorf("%w: %w", domain.ErrServiceNotFound, err)
	case cerrdefs.IsConflict(err), strings.Contains(err.Error(), "update out of sequence"):
		return fmt.Errorf("%w: %w", domain.ErrVersionConflict, err)
	default:
		return err
	}
}
