package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/seedy/internal/domain"
)

func TestImagePushEvent_IsSuccessfulPush(t *testing.T) {
	tests := []struct {
		action string
		result string
		want   bool
	}{
		{domain.ActionPush, domain.ResultSuccess, true},
		{domain.ActionPush, "FAILURE", false},
		{"DELETE", domain.ResultSuccess, false},
		{"", "", false},
	}

	for _, tt := range tests {
		ev := domain.ImagePushEvent{ActionType: tt.action, Result: tt.result}
		assert.Equal(t, tt.want, ev.IsSuccessfulPush(), "%s/%s", tt.action, tt.result)
	}
}

func TestImagePushEvent_RegistryHost(t *testing.T) {
	ev := domain.ImagePushEvent{Account: "123456789012", Region: "eu-west-1"}
	assert.Equal(t, "123456789012.dkr.ecr.eu-west-1.amazonaws.com", ev.RegistryHost())

	assert.Empty(t, domain.ImagePushEvent{Account: "123456789012"}.RegistryHost())
	assert.Empty(t, domain.ImagePushEvent{Region: "eu-west-1"}.RegistryHost())
}

func TestImagePushEvent_Reference(t *testing.T) {
	ev := domain.ImagePushEvent{
		Account:        "123456789012",
		Region:         "eu-west-1",
		RepositoryName: "team/api",
		Tag:            "v2",
	}

	ref, ok := ev.Reference(domain.MatchModeRepository)
	assert.True(t, ok)
	assert.Equal(t, domain.ImageReference{Repository: "team/api", Tag: "v2"}, ref)

	ref, ok = ev.Reference(domain.MatchModeRegistry)
	assert.True(t, ok)
	assert.Equal(t, "123456789012.dkr.ecr.eu-west-1.amazonaws.com/team/api:v2", ref.String())
}

func TestImagePushEvent_Reference_Untagged(t *testing.T) {
	ev := domain.ImagePushEvent{RepositoryName: "svc-a", Digest: "sha256:aaa"}

	_, ok := ev.Reference(domain.MatchModeRepository)
	assert.False(t, ok)
	assert.False(t, ev.HasTag())
}

func TestImagePushEvent_Reference_RegistryModeWithoutHost(t *testing.T) {
	ev := domain.ImagePushEvent{RepositoryName: "svc-a", Tag: "latest"}

	_, ok := ev.Reference(domain.MatchModeRegistry)
	assert.False(t, ok)
}
