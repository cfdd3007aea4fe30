package domain

import "time"

// HealthStatus is the overall state reported by a probe.
type HealthStatus string

const (
	HealthOK       HealthStatus = "ok"
	HealthDegraded HealthStatus = "degraded"
)

// HealthCheck is the result of one dependency check.
type HealthCheck struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// HealthReport aggregates the checks of one probe.
type HealthReport struct {
	Status HealthStatus  `json:"status"`
	Checks []HealthCheck `json:"checks,omitempty"`
}

// ConsumerStatus is a point-in-time view of the queue consumer.
type ConsumerStatus struct {
	Running             bool
	LastReceive         time.Time
	ConsecutiveFailures int64
}
