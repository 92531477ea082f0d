package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mailroom/mailroom/internal/domain"
)

// ServiceStatusRepository implements domain.ServiceStatusRepository on PostgreSQL
type ServiceStatusRepository struct {
	db *sql.DB
}

// NewServiceStatusRepository creates a new ServiceStatusRepository
func NewServiceStatusRepository(db *sql.DB) *ServiceStatusRepository {
	return &ServiceStatusRepository{db: db}
}

// Upsert writes the heartbeat row keyed by (service_name, machine_name)
func (r *ServiceStatusRepository) Upsert(ctx context.Context, status *domain.ServiceStatus) error {
	query := `
		INSERT INTO service_status (service_name, machine_name, status, cpu_percent, memory_mb,
			disk_free_bytes, goroutine_count, max_workers, batch_size, version, started_at, last_heartbeat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (service_name, machine_name) DO UPDATE
		SET status = EXCLUDED.status,
		    cpu_percent = EXCLUDED.cpu_percent,
		    memory_mb = EXCLUDED.memory_mb,
		    disk_free_bytes = EXCLUDED.disk_free_bytes,
		    goroutine_count = EXCLUDED.goroutine_count,
		    max_workers = EXCLUDED.max_workers,
		    batch_size = EXCLUDED.batch_size,
		    version = EXCLUDED.version,
		    last_heartbeat = EXCLUDED.last_heartbeat
	`

	_, err := r.db.ExecContext(ctx, query,
		status.ServiceName, status.MachineName, status.Status, status.CPUPercent,
		status.MemoryMB, status.DiskFreeBytes, status.GoroutineCount,
		status.MaxWorkers, status.BatchSize, status.Version,
		status.StartedAt.UTC(), status.LastHeartbeat.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert service status: %w", err)
	}

	return nil
}

// List returns every known service row, most recent heartbeat first
func (r *ServiceStatusRepository) List(ctx context.Context) ([]*domain.ServiceStatus, error) {
	query := `
		SELECT id, service_name, machine_name, status, cpu_percent, memory_mb,
		       disk_free_bytes, goroutine_count, max_workers, batch_size, version,
		       started_at, last_heartbeat
		FROM service_status
		ORDER BY last_heartbeat DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list service statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*domain.ServiceStatus
	for rows.Next() {
		var s domain.ServiceStatus
		var version sql.NullString
		if err := rows.Scan(&s.ID, &s.ServiceName, &s.MachineName, &s.Status,
			&s.CPUPercent, &s.MemoryMB, &s.DiskFreeBytes, &s.GoroutineCount,
			&s.MaxWorkers, &s.BatchSize, &version, &s.StartedAt, &s.LastHeartbeat); err != nil {
			return nil, fmt.Errorf("failed to scan service status: %w", err)
		}
		s.Version = version.String
		statuses = append(statuses, &s)
	}

	return statuses, rows.Err()
}

// DeleteStale removes rows whose last heartbeat predates the cutoff
func (r *ServiceStatusRepository) DeleteStale(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM service_status
		WHERE id IN (
			SELECT id FROM service_status WHERE last_heartbeat < $1 LIMIT $2
		)
	`

	result, err := r.db.ExecContext(ctx, query, cutoff.UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale service statuses: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}
