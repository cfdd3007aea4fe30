// Package reconcile implements the push event to service redeploy pipeline.
package reconcile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/bnema/seedy/internal/domain"
)

// ecrImageAction is the EventBridge envelope of an "ECR Image Action" event.
// Only the fields the pipeline needs are declared.
type ecrImageAction struct {
	Version    string        `json:"version"`
	ID         string        `json:"id"`
	DetailType string        `json:"detail-type"`
	Source     string        `json:"source"`
	Account    string        `json:"account"`
	Time       string        `json:"time"`
	Region     string        `json:"region"`
	Resources  []string      `json:"resources"`
	Detail     *actionDetail `json:"detail"`
}

type actionDetail struct {
	ActionType     string   `json:"action-type"`
	Result         string   `json:"result"`
	RepositoryName string   `json:"repository-name"`
	ImageTag       string   `json:"image-tag"`
	ImageTags      []string `json:"image-tags"`
	ImageDigest    string   `json:"image-digest"`
}

// Decoder turns raw notification payloads into push events.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses an ECR image action envelope. It fails with ErrDecode when
// the payload is not JSON, has no detail block or no repository name.
// A missing tag or digest is not an error.
func (d *Decoder) Decode(raw []byte) (domain.ImagePushEvent, error) {
	var envelope ecrImageAction
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return domain.ImagePushEvent{}, fmt.Errorf("%w: %w", domain.ErrDecode, err)
	}

	if envelope.Detail == nil {
		return domain.ImagePushEvent{}, fmt.Errorf("%w: missing detail block", domain.ErrDecode)
	}
	detail := envelope.Detail

	if detail.RepositoryName == "" {
		return domain.ImagePushEvent{}, fmt.Errorf("%w: %w", domain.ErrDecode, domain.ErrMissingRepository)
	}

	if detail.ImageDigest != "" && !digest.DigestRegexpAnchored.MatchString(detail.ImageDigest) {
		return domain.ImagePushEvent{}, fmt.Errorf("%w: %w: %q", domain.ErrDecode, domain.ErrInvalidDigest, detail.ImageDigest)
	}

	return domain.ImagePushEvent{
		ID:             envelope.ID,
		Account:        envelope.Account,
		Region:         envelope.Region,
		RepositoryName: detail.RepositoryName,
		Tag:            detail.tag(),
		Digest:         detail.ImageDigest,
		ActionType:     detail.ActionType,
		Result:         detail.Result,
		Time:           parseEventTime(envelope.Time),
	}, nil
}

func (d *actionDetail) tag() string {
	if d.ImageTag != "" {
		return d.ImageTag
	}
	for _, t := range d.ImageTags {
		if t != "" {
			return t
		}
	}
	return ""
}

// parseEventTime is lenient: the timestamp is informational only.
func parseEventTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
