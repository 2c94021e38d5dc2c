package domain

import "time"

// Target is one probe destination: a hostname or address plus a display name.
type Target struct {
	Host string `json:"host"`
	Name string `json:"name"`
}

// GroupResult is the outcome of one protocol group (dns, tcp or http) for a
// single run. Success reflects the group's pass threshold, not 100% of probes.
//
// DNS and HTTP groups fill Details (label or URL -> pass). The TCP group
// fills PortDetails (label -> "port_<N>" -> pass) because each host is probed
// on more than one port.
type GroupResult struct {
	Success      bool                       `json:"success"`
	SuccessCount int                        `json:"success_count"`
	TotalCount   int                        `json:"total_count"`
	Details      map[string]bool            `json:"details,omitempty"`
	PortDetails  map[string]map[string]bool `json:"port_details,omitempty"`
}

// CheckResult is the verdict of one full health-check run. It is handed to
// the caller as-is; the core keeps nothing across runs besides the rolling
// history counters.
type CheckResult struct {
	Status        bool                   `json:"status"`
	Timestamp     time.Time              `json:"timestamp"`
	Confidence    float64                `json:"confidence"`
	Checks        map[string]GroupResult `json:"checks"`
	FailedReasons []string               `json:"failed_reasons"`
	PassedChecks  int                    `json:"passed_checks"`
	TotalChecks   int                    `json:"total_checks"`
}
