package reconcile

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/boundaries/out/mocks"
	"github.com/bnema/seedy/internal/domain"
)

func TestDispatcher_Dispatch_Success(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)

	orch.EXPECT().ForceUpdate(mock.Anything, "s1", "svc-a:latest@sha256:aaa", "").
		Return(&out.UpdateResult{Warnings: []string{"image could not be accessed on a registry"}}, nil)

	d := NewDispatcher(orch, nil, 1, time.Second)
	outcome := d.Dispatch(testCtx(), svc("s1", "svc-a", "latest"), domain.UpdateTarget{ImageSpec: "svc-a:latest@sha256:aaa"})

	assert.True(t, outcome.Succeeded)
	assert.NoError(t, outcome.Err)
	assert.Equal(t, "s1", outcome.ServiceID)
	assert.Equal(t, "svc-a:latest@sha256:aaa", outcome.Image)
	assert.Equal(t, []string{"image could not be accessed on a registry"}, outcome.Warnings)
}

func TestDispatcher_Dispatch_Failure(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)
	updateErr := errors.New("rpc error: update out of sequence")

	orch.EXPECT().ForceUpdate(mock.Anything, "s1", "svc-a:latest@sha256:aaa", "").Return(nil, updateErr)

	d := NewDispatcher(orch, nil, 1, time.Second)
	outcome := d.Dispatch(testCtx(), svc("s1", "svc-a", "latest"), domain.UpdateTarget{ImageSpec: "svc-a:latest@sha256:aaa"})

	assert.False(t, outcome.Succeeded)
	assert.ErrorIs(t, outcome.Err, domain.ErrDispatch)
	assert.ErrorIs(t, outcome.Err, updateErr)
}

func TestDispatcher_Dispatch_AppliesCallTimeout(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)

	orch.EXPECT().ForceUpdate(mock.Anything, "s1", mock.Anything, "").
		RunAndReturn(func(ctx context.Context, _, _, _ string) (*out.UpdateResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	d := NewDispatcher(orch, nil, 1, 20*time.Millisecond)
	outcome := d.Dispatch(testCtx(), svc("s1", "svc-a", "latest"), domain.UpdateTarget{ImageSpec: "svc-a:latest@sha256:aaa"})

	assert.False(t, outcome.Succeeded)
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
}

func TestDispatcher_DispatchAll_FailureDoesNotSuppressSiblings(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)

	orch.EXPECT().ForceUpdate(mock.Anything, "s1", "svc-a:latest@sha256:aaa", "").Return(nil, errors.New("boom")).Once()
	orch.EXPECT().ForceUpdate(mock.Anything, "s2", "svc-a:latest@sha256:aaa", "").Return(&out.UpdateResult{}, nil).Once()
	orch.EXPECT().ForceUpdate(mock.Anything, "s3", "svc-a:latest@sha256:aaa", "").Return(&out.UpdateResult{}, nil).Once()

	d := NewDispatcher(orch, nil, 2, time.Second)
	event := pushEvent("svc-a", "latest", "sha256:aaa")
	ref := domain.ImageReference{Repository: "svc-a", Tag: "latest"}

	outcomes := d.DispatchAll(testCtx(), event, ref, []domain.ServiceDescriptor{
		svc("s1", "svc-a", "latest"),
		svc("s2", "svc-a", "latest"),
		svc("s3", "svc-a", "latest"),
	})

	require.Len(t, outcomes, 3)
	assert.Equal(t, "s1", outcomes[0].ServiceID)
	assert.False(t, outcomes[0].Succeeded)
	assert.True(t, outcomes[1].Succeeded)
	assert.True(t, outcomes[2].Succeeded)
	assert.Equal(t, domain.DispatchPartial, domain.SummarizeOutcomes(outcomes))
}

func TestDispatcher_DispatchAll_BoundedConcurrency(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)

	var inFlight, peak atomic.Int32
	orch.EXPECT().ForceUpdate(mock.Anything, mock.Anything, mock.Anything, "").
		RunAndReturn(func(context.Context, string, string, string) (*out.UpdateResult, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return &out.UpdateResult{}, nil
		}).Times(6)

	d := NewDispatcher(orch, nil, 2, time.Second)
	services := []domain.ServiceDescriptor{
		svc("s1", "svc-a", "latest"), svc("s2", "svc-a", "latest"), svc("s3", "svc-a", "latest"),
		svc("s4", "svc-a", "latest"), svc("s5", "svc-a", "latest"), svc("s6", "svc-a", "latest"),
	}

	outcomes := d.DispatchAll(testCtx(), pushEvent("svc-a", "latest", "sha256:aaa"), domain.ImageReference{Repository: "svc-a", Tag: "latest"}, services)

	assert.Len(t, outcomes, 6)
	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, domain.DispatchFull, domain.SummarizeOutcomes(outcomes))
}

func TestDispatcher_DispatchAll_ForwardsRegistryAuthOncePerEvent(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)
	auth := mocks.NewMockRegistryAuthProvider(t)
	event := pushEvent("svc-a", "latest", "sha256:aaa")

	auth.EXPECT().EncodedAuth(mock.Anything, event).Return("ZW5jb2RlZA==", nil).Once()
	orch.EXPECT().ForceUpdate(mock.Anything, "s1", "svc-a:latest@sha256:aaa", "ZW5jb2RlZA==").Return(&out.UpdateResult{}, nil)
	orch.EXPECT().ForceUpdate(mock.Anything, "s2", "svc-a:latest@sha256:aaa", "ZW5jb2RlZA==").Return(&out.UpdateResult{}, nil)

	d := NewDispatcher(orch, auth, 4, time.Second)
	outcomes := d.DispatchAll(testCtx(), event, domain.ImageReference{Repository: "svc-a", Tag: "latest"}, []domain.ServiceDescriptor{
		svc("s1", "svc-a", "latest"),
		svc("s2", "svc-a", "latest"),
	})

	assert.Equal(t, domain.DispatchFull, domain.SummarizeOutcomes(outcomes))
}

func TestDispatcher_DispatchAll_AuthFailureStillUpdates(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)
	auth := mocks.NewMockRegistryAuthProvider(t)
	event := pushEvent("svc-a", "latest", "sha256:aaa")

	auth.EXPECT().EncodedAuth(mock.Anything, event).Return("", domain.ErrRegistryAuth)
	orch.EXPECT().ForceUpdate(mock.Anything, "s1", "svc-a:latest@sha256:aaa", "").Return(&out.UpdateResult{}, nil)

	d := NewDispatcher(orch, auth, 1, time.Second)
	outcomes := d.DispatchAll(testCtx(), event, domain.ImageReference{Repository: "svc-a", Tag: "latest"}, []domain.ServiceDescriptor{
		svc("s1", "svc-a", "latest"),
	})

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Succeeded)
}

func TestDispatcher_DispatchAll_NoServices(t *testing.T) {
	orch := mocks.NewMockServiceOrchestrator(t)
	auth := mocks.NewMockRegistryAuthProvider(t)

	d := NewDispatcher(orch, auth, 1, time.Second)
	outcomes := d.DispatchAll(testCtx(), pushEvent("svc-a", "latest", "sha256:aaa"), domain.ImageReference{Repository: "svc-a", Tag: "latest"}, nil)

	assert.Empty(t, outcomes)
}
