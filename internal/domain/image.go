package domain

// MatchMode selects which repository name an event is matched under.
type MatchMode string

const (
	// MatchModeRepository matches services on the bare repository name.
	MatchModeRepository MatchMode = "repository"
	// MatchModeRegistry matches services on registry-host/repository.
	MatchModeRegistry MatchMode = "registry"
)

// ParseMatchMode converts a config string into a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(s) {
	case "", MatchModeRepository:
		return MatchModeRepository, nil
	case MatchModeRegistry:
		return MatchModeRegistry, nil
	default:
		return "", ErrInvalidMatchMode
	}
}

// ImageReference identifies a mutable image pointer as repository:tag.
// Two references are equal iff both fields are byte-equal.
type ImageReference struct {
	Repository string
	Tag        string
}

// String returns repository:tag.
func (r ImageReference) String() string {
	return r.Repository + ":" + r.Tag
}

// Equal reports byte-exact equality of repository and tag.
func (r ImageReference) Equal(other ImageReference) bool {
	return r.Repository == other.Repository && r.Tag == other.Tag
}

// WithDigest returns the pinned image spec repository:tag@digest.
func (r ImageReference) WithDigest(digest string) string {
	return r.String() + "@" + digest
}
