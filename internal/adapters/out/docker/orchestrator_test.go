package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/zerowrap"
	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/swarm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/seedy/internal/domain"
)

type fakeSwarm struct {
	services   []swarm.Service
	listArgs   filters.Args
	listErr    error
	inspectErr error
	updateErr  error
	pingErr    error
	manager    bool
	warnings   []string

	updatedID      string
	updatedVersion swarm.Version
	updatedSpec    swarm.ServiceSpec
	updatedAuth    string
}

func (f *fakeSwarm) listServices(_ context.Context, args filters.Args) ([]swarm.Service, error) {
	f.listArgs = args
	return f.services, f.listErr
}

func (f *fakeSwarm) inspectService(_ context.Context, id string) (swarm.Service, error) {
	if f.inspectErr != nil {
		return swarm.Service{}, f.inspectErr
	}
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return swarm.Service{}, cerrdefs.ErrNotFound
}

func (f *fakeSwarm) updateService(_ context.Context, id string, version swarm.Version, spec swarm.ServiceSpec, auth string) ([]string, error) {
	f.updatedID = id
	f.updatedVersion = version
	f.updatedSpec = spec
	f.updatedAuth = auth
	return f.warnings, f.updateErr
}

func (f *fakeSwarm) ping(context.Context) error { return f.pingErr }

func (f *fakeSwarm) isSwarmManager(context.Context) (bool, error) { return f.manager, nil }

func (f *fakeSwarm) close() error { return nil }

func testCtx() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func service(id, name, image string, labels map[string]string, version uint64) swarm.Service {
	return swarm.Service{
		ID:   id,
		Meta: swarm.Meta{Version: swarm.Version{Index: version}},
		Spec: swarm.ServiceSpec{
			Annotations: swarm.Annotations{Name: name, Labels: labels},
			TaskTemplate: swarm.TaskSpec{
				ContainerSpec: &swarm.ContainerSpec{
					Image: image,
					Env:   []string{"KEEP=me"},
				},
			},
		},
	}
}

func TestOrchestrator_ListServices(t *testing.T) {
	fake := &fakeSwarm{services: []swarm.Service{
		service("s1", "web", "svc-a:latest@sha256:abc", map[string]string{domain.LabelStackImage: "svc-a:latest"}, 3),
		{ID: "plugin", Spec: swarm.ServiceSpec{Annotations: swarm.Annotations{Name: "plugin"}}},
		service("s2", "worker", "svc-b:v1", nil, 1),
	}}
	o := &Orchestrator{api: fake}

	records, err := o.ListServices(testCtx(), domain.LabelFilter{})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.ServiceRecord{
		ID:        "s1",
		Name:      "web",
		ImageSpec: "svc-a:latest@sha256:abc",
		Labels:    map[string]string{domain.LabelStackImage: "svc-a:latest"},
	}, records[0])
	assert.Equal(t, "s2", records[1].ID)
	assert.Equal(t, 0, fake.listArgs.Len())
}

func TestOrchestrator_ListServices_LabelFilter(t *testing.T) {
	fake := &fakeSwarm{}
	o := &Orchestrator{api: fake}

	_, err := o.ListServices(testCtx(), domain.LabelFilter{Key: "seedy.enable", Value: "true"})

	require.NoError(t, err)
	assert.Equal(t, []string{"seedy.enable=true"}, fake.listArgs.Get("label"))
}

func TestOrchestrator_ListServices_Error(t *testing.T) {
	engineErr := errors.New("Cannot connect to the Docker daemon")
	o := &Orchestrator{api: &fakeSwarm{listErr: engineErr}}

	records, err := o.ListServices(testCtx(), domain.LabelFilter{})

	assert.Nil(t, records)
	assert.ErrorIs(t, err, engineErr)
}

func TestOrchestrator_ForceUpdate(t *testing.T) {
	fake := &fakeSwarm{
		services: []swarm.Service{service("s1", "web", "svc-a:latest@sha256:old", nil, 42)},
		warnings: []string{"image svc-a:latest@sha256:new could not be accessed on a registry"},
	}
	o := &Orchestrator{api: fake}

	res, err := o.ForceUpdate(testCtx(), "s1", "svc-a:latest@sha256:new", "YXV0aA==")

	require.NoError(t, err)
	assert.Equal(t, fake.warnings, res.Warnings)
	assert.Equal(t, "s1", fake.updatedID)
	assert.Equal(t, uint64(42), fake.updatedVersion.Index)
	assert.Equal(t, "YXV0aA==", fake.updatedAuth)
	assert.Equal(t, "svc-a:latest@sha256:new", fake.updatedSpec.TaskTemplate.ContainerSpec.Image)
	assert.Equal(t, uint64(1), fake.updatedSpec.TaskTemplate.ForceUpdate)
	assert.Equal(t, "web", fake.updatedSpec.Name)
	assert.Equal(t, []string{"KEEP=me"}, fake.updatedSpec.TaskTemplate.ContainerSpec.Env)
}

func TestOrchestrator_ForceUpdate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fake    *fakeSwarm
		id      string
		wantErr error
	}{
		{
			name:    "service gone",
			fake:    &fakeSwarm{},
			id:      "missing",
			wantErr: domain.ErrServiceNotFound,
		},
		{
			name: "version conflict",
			fake: &fakeSwarm{
				services:  []swarm.Service{service("s1", "web", "svc-a:latest", nil, 1)},
				updateErr: errors.New("rpc error: code = Unknown desc = update out of sequence"),
			},
			id:      "s1",
			wantErr: domain.ErrVersionConflict,
		},
		{
			name: "conflict class",
			fake: &fakeSwarm{
				services:  []swarm.Service{service("s1", "web", "svc-a:latest", nil, 1)},
				updateErr: cerrdefs.ErrConflict,
			},
			id:      "s1",
			wantErr: domain.ErrVersionConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Orchestrator{api: tt.fake}
			res, err := o.ForceUpdate(testCtx(), tt.id, "svc-a:latest@sha256:new", "")
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOrchestrator_Ping(t *testing.T) {
	t.Run("manager", func(t *testing.T) {
		o := &Orchestrator{api: &fakeSwarm{manager: true}}
		assert.NoError(t, o.Ping(testCtx()))
	})

	t.Run("worker node", func(t *testing.T) {
		o := &Orchestrator{api: &fakeSwarm{manager: false}}
		assert.ErrorIs(t, o.Ping(testCtx()), domain.ErrNotSwarmManager)
	})

	t.Run("unreachable", func(t *testing.T) {
		o := &Orchestrator{api: &fakeSwarm{pingErr: errors.New("dial unix: no such file")}}
		assert.ErrorIs(t, o.Ping(testCtx()), domain.ErrOrchestrator)
	})
}
