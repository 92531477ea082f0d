package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateHealth(t *testing.T) {
	healthy := ProbeResult{Name: "smtp", State: HealthStateHealthy}
	db := func(s HealthState) ProbeResult { return ProbeResult{Name: "database", State: s} }
	smtp := func(s HealthState) ProbeResult { return ProbeResult{Name: "smtp", State: s} }
	queue := func(s HealthState) ProbeResult { return ProbeResult{Name: "queue", State: s} }

	tests := []struct {
		name   string
		probes []ProbeResult
		want   OverallHealth
	}{
		{"all healthy", []ProbeResult{db(HealthStateHealthy), smtp(HealthStateHealthy), queue(HealthStateHealthy)}, OverallHealthy},
		{"db unhealthy alone is critical", []ProbeResult{db(HealthStateUnhealthy), healthy}, OverallCritical},
		{"one non-db unhealthy is warning", []ProbeResult{db(HealthStateHealthy), smtp(HealthStateUnhealthy)}, OverallWarning},
		{"two unhealthy is critical", []ProbeResult{db(HealthStateHealthy), smtp(HealthStateUnhealthy), queue(HealthStateUnhealthy)}, OverallCritical},
		{"degraded does not escalate", []ProbeResult{db(HealthStateHealthy), queue(HealthStateDegraded)}, OverallHealthy},
		{"no probes", nil, OverallHealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateHealth(tt.probes))
		})
	}
}
