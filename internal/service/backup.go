package service

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/mailroom/mailroom/config"
)

// PgDumpBackupRunner implements domain.BackupRunner with the pg_dump binary
type PgDumpBackupRunner struct {
	cfg *config.DatabaseConfig
}

// NewPgDumpBackupRunner creates a pg_dump backed runner
func NewPgDumpBackupRunner(cfg *config.DatabaseConfig) *PgDumpBackupRunner {
	return &PgDumpBackupRunner{cfg: cfg}
}

// Run writes a custom-format dump under dir and returns the file path
func (r *PgDumpBackupRunner) Run(ctx context.Context, dir string) (string, error) {
	fileName := fmt.Sprintf("%s_%s.dump", r.cfg.DBName, time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(dir, fileName)

	cmd := exec.CommandContext(ctx, "pg_dump",
		"--format=custom",
		"--host", r.cfg.Host,
		"--port", fmt.Sprintf("%d", r.cfg.Port),
		"--username", r.cfg.User,
		"--dbname", r.cfg.DBName,
		"--file", path,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+r.cfg.Password)

	if output, err := cmd.CombinedOutput(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("pg_dump failed: %w: %s", err, string(output))
	}
	return path, nil
}
