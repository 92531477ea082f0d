package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_service_status_repository.go -package mocks github.com/mailroom/mailroom/internal/domain ServiceStatusRepository

// HealthState is the per-probe verdict
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateDegraded  HealthState = "degraded"
	HealthStateUnhealthy HealthState = "unhealthy"
)

// OverallHealth is the aggregated service verdict
type OverallHealth string

const (
	OverallHealthy  OverallHealth = "healthy"
	OverallWarning  OverallHealth = "warning"
	OverallCritical OverallHealth = "critical"
)

// ProbeResult is the outcome of one health probe
type ProbeResult struct {
	Name      string      `json:"name"`
	State     HealthState `json:"state"`
	ElapsedMs int64       `json:"elapsed_ms"`
	Detail    string      `json:"detail,omitempty"`
}

// AggregateHealth applies the aggregation rules over the probe set.
// The database probe dominates: its failure alone is critical.
func AggregateHealth(probes []ProbeResult) OverallHealth {
	unhealthy := 0
	dbUnhealthy := false
	for _, p := range probes {
		if p.State != HealthStateUnhealthy {
			continue
		}
		unhealthy++
		if p.Name == "database" {
			dbUnhealthy = true
		}
	}
	switch {
	case dbUnhealthy, unhealthy > 1:
		return OverallCritical
	case unhealthy == 1:
		return OverallWarning
	default:
		return OverallHealthy
	}
}

// ServiceStatus is the heartbeat row, unique per (service_name, machine_name)
type ServiceStatus struct {
	ID          int64         `json:"id"`
	ServiceName string        `json:"service_name"`
	MachineName string        `json:"machine_name"`
	Status      OverallHealth `json:"status"`

	CPUPercent     float64 `json:"cpu_percent"`
	MemoryMB       float64 `json:"memory_mb"`
	DiskFreeBytes  int64   `json:"disk_free_bytes"`
	GoroutineCount int     `json:"goroutine_count"`

	MaxWorkers int    `json:"max_workers"`
	BatchSize  int    `json:"batch_size"`
	Version    string `json:"version"`

	StartedAt     time.Time `json:"started_at"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// HealthReport is the GET /health payload
type HealthReport struct {
	Overall   OverallHealth `json:"overall"`
	Probes    []ProbeResult `json:"probes"`
	CheckedAt time.Time     `json:"checked_at"`
	Version   string        `json:"version"`
	Uptime    string        `json:"uptime"`
}

// ServiceStatusRepository defines data access for heartbeat rows
type ServiceStatusRepository interface {
	// Upsert writes the heartbeat row keyed by (service_name, machine_name)
	Upsert(ctx context.Context, status *ServiceStatus) error

	// List returns every known service row, most recent heartbeat first
	List(ctx context.Context) ([]*ServiceStatus, error)

	// DeleteStale removes rows whose last heartbeat predates the cutoff
	DeleteStale(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}
