package reconcile

import "github.com/bnema/seedy/internal/domain"

// Matcher selects the services an event applies to.
type Matcher struct {
	mode domain.MatchMode
}

// NewMatcher creates a Matcher for the given mode.
func NewMatcher(mode domain.MatchMode) Matcher {
	if mode == "" {
		mode = domain.MatchModeRepository
	}
	return Matcher{mode: mode}
}

// Match returns the services whose image equals the event's repository:tag.
// Comparison is byte-exact. An untagged event matches nothing.
func (m Matcher) Match(event domain.ImagePushEvent, services []domain.ServiceDescriptor) []domain.ServiceDescriptor {
	ref, ok := event.Reference(m.mode)
	if !ok {
		return nil
	}

	var matched []domain.ServiceDescriptor
	for _, svc := range services {
		if svc.Image.Equal(ref) {
			matched = append(matched, svc)
		}
	}
	return matched
}
