// Package docker implements the service orchestrator adapter over the
// Docker Engine swarm API.
package docker

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/swarm"
	"github.com/docker/docker/client"
)

// swarmAPI is the subset of the Docker client the orchestrator needs.
type swarmAPI interface {
	listServices(ctx context.Context, args filters.Args) ([]swarm.Service, error)
	inspectService(ctx context.Context, serviceID string) (swarm.Service, error)
	updateService(ctx context.Context, serviceID string, version swarm.Version, spec swarm.ServiceSpec, registryAuth string) ([]string, error)
	ping(ctx context.Context) error
	isSwarmManager(ctx context.Context) (bool, error)
	close() error
}

type engineClient struct {
	cli *client.Client
}

func newEngineClient(host string) (*engineClient, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, err
	}
	return &engineClient{cli: cli}, nil
}

func (e *engineClient) listServices(ctx context.Context, args filters.Args) ([]swarm.Service, error) {
	return e.cli.ServiceList(ctx, types.ServiceListOptions{Filters: args})
}

func (e *engineClient) inspectService(ctx context.Context, serviceID string) (swarm.Service, error) {
	svc, _, err := e.cli.ServiceInspectWithRaw(ctx, serviceID, types.ServiceInspectOptions{})
	return svc, err
}

func (e *engineClient) updateService(ctx context.Context, serviceID string, version swarm.Version, spec swarm.ServiceSpec, registryAuth string) ([]string, error) {
	resp, err := e.cli.ServiceUpdate(ctx, serviceID, version, spec, types.ServiceUpdateOptions{
		EncodedRegistryAuth: registryAuth,
	})
	if err != nil {
		return nil, err
	}
	return resp.Warnings, nil
}

func (e *engineClient) ping(ctx context.Context) error {
	_, err := e.cli.Ping(ctx)
	return err
}

func (e *engineClient) isSwarmManager(ctx context.Context) (bool, error) {
	info, err := e.cli.Info(ctx)
	if err != nil {
		return false, err
	}
	return info.Swarm.ControlAvailable, nil
}

func (e *engineClient) close() error {
	return e.cli.Close()
}
