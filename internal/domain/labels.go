package domain

import "strings"

// Label keys read from orchestrator services.
const (
	// LabelStackImage is set by `docker stack deploy` to the image as written
	// in the compose file, before digest resolution.
	LabelStackImage = "com.docker.stack.image"
)

// ParseLabelFilter parses key=value. An empty string yields the zero filter.
func ParseLabelFilter(s string) (LabelFilter, error) {
	if s == "" {
		return LabelFilter{}, nil
	}

	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return LabelFilter{}, ErrInvalidLabelFilter
	}

	return LabelFilter{Key: key, Value: value}, nil
}
