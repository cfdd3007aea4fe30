package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/seedy/internal/boundaries/out/mocks"
	"github.com/bnema/seedy/internal/domain"
)

func testCtx() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func TestParseImageReference(t *testing.T) {
	tests := []struct {
		spec     string
		wantRepo string
		wantTag  string
		wantErr  bool
	}{
		{spec: "svc-a:latest", wantRepo: "svc-a", wantTag: "latest"},
		{spec: "svc-a:latest@sha256:7f5b2640fe6fb4f46592dfd3410c4a79dac4f89e4782432e0378abcd12345678", wantRepo: "svc-a", wantTag: "latest"},
		{spec: "123456789012.dkr.ecr.eu-west-1.amazonaws.com/team/api:v1.2", wantRepo: "123456789012.dkr.ecr.eu-west-1.amazonaws.com/team/api", wantTag: "v1.2"},
		{spec: "localhost:5000/app:dev", wantRepo: "localhost:5000/app", wantTag: "dev"},
		{spec: "svc-a", wantErr: true},
		{spec: "svc-a@sha256:7f5b2640fe6fb4f46592dfd3410c4a79dac4f89e4782432e0378abcd12345678", wantErr: true},
		{spec: "", wantErr: true},
		{spec: "Not Valid:tag", wantErr: true},
		{spec: "UPPER:latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			ref, err := ParseImageReference(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidImageReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRepo, ref.Repository)
			assert.Equal(t, tt.wantTag, ref.Tag)
		})
	}
}

func TestInventory_ListServices_SkipsUnusableImages(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)
	filter := domain.LabelFilter{Key: "seedy.enable", Value: "true"}

	orch.EXPECT().ListServices(mock.Anything, filter).Return([]domain.ServiceRecord{
		{ID: "s1", Name: "web", ImageSpec: "svc-a:latest@sha256:7f5b2640fe6fb4f46592dfd3410c4a79dac4f89e4782432e0378abcd12345678"},
		{ID: "s2", Name: "untagged", ImageSpec: "svc-b"},
		{ID: "s3", Name: "broken", ImageSpec: "::::"},
		{ID: "s4", Name: "worker", ImageSpec: "svc-c:v2"},
	}, nil)

	inv := NewInventory(orch, filter, 0)
	services, err := inv.ListServices(testCtx())

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "s1", services[0].ID)
	assert.Equal(t, domain.ImageReference{Repository: "svc-a", Tag: "latest"}, services[0].Image)
	assert.Equal(t, "s4", services[1].ID)
	assert.Equal(t, domain.ImageReference{Repository: "svc-c", Tag: "v2"}, services[1].Image)
}

func TestInventory_ListServices_PrefersStackImageLabel(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)

	orch.EXPECT().ListServices(mock.Anything, domain.LabelFilter{}).Return([]domain.ServiceRecord{
		{
			ID:        "s1",
			Name:      "stack_web",
			ImageSpec: "svc-a:latest@sha256:7f5b2640fe6fb4f46592dfd3410c4a79dac4f89e4782432e0378abcd12345678",
			Labels:    map[string]string{domain.LabelStackImage: "svc-a:stable"},
		},
	}, nil)

	services, err := NewInventory(orch, domain.LabelFilter{}, 0).ListServices(testCtx())

	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "stable", services[0].Image.Tag)
}

func TestInventory_ListServices_Error(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)
	transportErr := errors.New("dial unix /var/run/docker.sock: connect: no such file")

	orch.EXPECT().ListServices(mock.Anything, domain.LabelFilter{}).Return(nil, transportErr)

	services, err := NewInventory(orch, domain.LabelFilter{}, 0).ListServices(testCtx())

	assert.Nil(t, services)
	assert.ErrorIs(t, err, domain.ErrInventory)
	assert.ErrorIs(t, err, transportErr)
}

func TestInventory_ListServices_FreshSnapshotEveryCall(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)

	orch.EXPECT().ListServices(mock.Anything, domain.LabelFilter{}).Return([]domain.ServiceRecord{
		{ID: "s1", ImageSpec: "svc-a:latest"},
	}, nil).Once()
	orch.EXPECT().ListServices(mock.Anything, domain.LabelFilter{}).Return([]domain.ServiceRecord{
		{ID: "s1", ImageSpec: "svc-a:v2"},
	}, nil).Once()

	inv := NewInventory(orch, domain.LabelFilter{}, 0)

	first, err := inv.ListServices(testCtx())
	require.NoError(t, err)
	second, err := inv.ListServices(testCtx())
	require.NoError(t, err)

	assert.Equal(t, "latest", first[0].Image.Tag)
	assert.Equal(t, "v2", second[0].Image.Tag)
}
