package domain

import (
	"fmt"
	"time"
)

// Registry action and result values carried by ECR image action events.
const (
	ActionPush    = "PUSH"
	ResultSuccess = "SUCCESS"
)

// ImagePushEvent is the decoded form of one registry push notification.
type ImagePushEvent struct {
	ID             string
	Account        string // registry id
	Region         string
	RepositoryName string
	Tag            string // empty for untagged pushes
	Digest         string
	ActionType     string
	Result         string
	Time           time.Time
}

// IsSuccessfulPush reports whether the event describes a completed push.
func (e ImagePushEvent) IsSuccessfulPush() bool {
	return e.ActionType == ActionPush && e.Result == ResultSuccess
}

// HasTag reports whether the push carried a tag.
func (e ImagePushEvent) HasTag() bool {
	return e.Tag != ""
}

// RegistryHost returns the ECR registry hostname the image was pushed to,
// or "" when the account or region is unknown.
func (e ImagePushEvent) RegistryHost() string {
	if e.Account == "" || e.Region == "" {
		return ""
	}
	return fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com", e.Account, e.Region)
}

// Reference returns the repository:tag the event names under the given mode.
// ok is false when the event has no tag, or when registry mode is requested
// but the registry host is unknown.
func (e ImagePushEvent) Reference(mode MatchMode) (ImageReference, bool) {
	if !e.HasTag() {
		return ImageReference{}, false
	}

	repo := e.RepositoryName
	if mode == MatchModeRegistry {
		host := e.RegistryHost()
		if host == "" {
			return ImageReference{}, false
		}
		repo = host + "/" + repo
	}

	return ImageReference{Repository: repo, Tag: e.Tag}, true
}
