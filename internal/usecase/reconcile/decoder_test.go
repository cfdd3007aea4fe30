package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/seedy/internal/domain"
)

const pushPayload = `{
  "version": "0",
  "id": "13cde686-328b-6117-af20-0e5566167482",
  "detail-type": "ECR Image Action",
  "source": "aws.ecr",
  "account": "123456789012",
  "time": "2019-11-16T01:54:34Z",
  "region": "us-west-2",
  "resources": [],
  "detail": {
    "result": "SUCCESS",
    "repository-name": "my-repository-name",
    "image-digest": "sha256:7f5b2640fe6fb4f46592dfd3410c4a79dac4f89e4782432e0378abcd1234",
    "action-type": "PUSH",
    "image-tag": "latest"
  }
}`

func TestDecoder_Decode_ValidPush(t *testing.T) {
	event, err := NewDecoder().Decode([]byte(pushPayload))
	require.NoError(t, err)

	assert.Equal(t, "13cde686-328b-6117-af20-0e5566167482", event.ID)
	assert.Equal(t, "123456789012", event.Account)
	assert.Equal(t, "us-west-2", event.Region)
	assert.Equal(t, "my-repository-name", event.RepositoryName)
	assert.Equal(t, "latest", event.Tag)
	assert.Equal(t, "sha256:7f5b2640fe6fb4f46592dfd3410c4a79dac4f89e4782432e0378abcd1234", event.Digest)
	assert.True(t, event.IsSuccessfulPush())
	assert.Equal(t, time.Date(2019, 11, 16, 1, 54, 34, 0, time.UTC), event.Time)
}

func TestDecoder_Decode_RepositoryAndTagRoundTrip(t *testing.T) {
	tests := []struct {
		repo string
		tag  string
	}{
		{"svc-a", "latest"},
		{"team/api", "v1.2.3"},
		{"MyApp", "Latest"},
		{"a", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.repo+":"+tt.tag, func(t *testing.T) {
			raw := `{"detail":{"action-type":"PUSH","result":"SUCCESS","repository-name":"` + tt.repo + `","image-tag":"` + tt.tag + `","image-digest":"sha256:aaa"}}`

			event, err := NewDecoder().Decode([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, tt.repo, event.RepositoryName)
			assert.Equal(t, tt.tag, event.Tag)
		})
	}
}

func TestDecoder_Decode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "not json", raw: `not json at all`, wantErr: domain.ErrDecode},
		{name: "empty payload", raw: ``, wantErr: domain.ErrDecode},
		{name: "missing detail", raw: `{"id":"x","account":"1"}`, wantErr: domain.ErrDecode},
		{name: "null detail", raw: `{"detail":null}`, wantErr: domain.ErrDecode},
		{name: "missing repository", raw: `{"detail":{"image-tag":"latest"}}`, wantErr: domain.ErrMissingRepository},
		{name: "empty repository", raw: `{"detail":{"repository-name":"","image-tag":"latest"}}`, wantErr: domain.ErrMissingRepository},
		{name: "malformed digest", raw: `{"detail":{"repository-name":"svc","image-digest":"not-a-digest"}}`, wantErr: domain.ErrInvalidDigest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NewDecoder().Decode([]byte(tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrDecode)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.ImagePushEvent{}, event)
		})
	}
}

func TestDecoder_Decode_MissingTagIsNotAnError(t *testing.T) {
	raw := `{"detail":{"action-type":"PUSH","result":"SUCCESS","repository-name":"svc-a","image-digest":"sha256:aaa"}}`

	event, err := NewDecoder().Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "svc-a", event.RepositoryName)
	assert.Empty(t, event.Tag)
	assert.False(t, event.HasTag())
}

func TestDecoder_Decode_MissingDigestIsNotAnError(t *testing.T) {
	raw := `{"detail":{"repository-name":"svc-a","image-tag":"latest"}}`

	event, err := NewDecoder().Decode([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, event.Digest)
}

func TestDecoder_Decode_ImageTagsFallback(t *testing.T) {
	raw := `{"detail":{"repository-name":"svc-a","image-tags":["","stable","v2"]}}`

	event, err := NewDecoder().Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "stable", event.Tag)
}

func TestDecoder_Decode_IgnoresUnknownFields(t *testing.T) {
	raw := `{"future":{"nested":true},"detail":{"repository-name":"svc-a","image-tag":"latest","artifact-media-type":"x","extra":[1,2]}}`

	event, err := NewDecoder().Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "svc-a", event.RepositoryName)
}

func TestDecoder_Decode_BadTimeIsTolerated(t *testing.T) {
	raw := `{"time":"yesterday","detail":{"repository-name":"svc-a","image-tag":"latest"}}`

	event, err := NewDecoder().Decode([]byte(raw))
	require.NoError(t, err)
	assert.True(t, event.Time.IsZero())
}
