package domain

// ServiceRecord is an orchestrator service as reported by the runtime,
// before its image spec has been parsed.
type ServiceRecord struct {
	ID        string
	Name      string
	ImageSpec string
	Labels    map[string]string
}

// ServiceDescriptor is a snapshot of one running service, valid for the
// processing of a single event.
type ServiceDescriptor struct {
	ID     string
	Name   string
	Image  ImageReference
	Labels map[string]string
}

// UpdateOutcome is the result of one forced update attempt.
type UpdateOutcome struct {
	ServiceID   string
	ServiceName string
	Image       string
	Succeeded   bool
	Err         error
	Warnings    []string
}

// LabelFilter restricts candidate services to those carrying Key=Value.
type LabelFilter struct {
	Key   string
	Value string
}

// IsZero reports whether no filter is set.
func (f LabelFilter) IsZero() bool {
	return f.Key == ""
}

// String returns key=value.
func (f LabelFilter) String() string {
	if f.IsZero() {
		return ""
	}
	return f.Key + "=" + f.Value
}

// UpdateTarget is what a matched service is redeployed to.
type UpdateTarget struct {
	ImageSpec    string // repository:tag@digest
	RegistryAuth string // base64 encoded registry auth, may be empty
}
