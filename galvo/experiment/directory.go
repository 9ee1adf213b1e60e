package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	RunsDir       = "runs"
	LatestSymlink = "latest"
)

// RunDir is one sweep's output directory under RunsDir.
type RunDir struct {
	Path      string    // Absolute path to the run directory
	ID        string    // Unique run identifier
	Timestamp time.Time // When the run was created
}

// Create makes a new run directory and points the "latest" symlink at it.
func Create() (*RunDir, error) {
	if err := os.MkdirAll(RunsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating runs directory: %w", err)
	}

	id := GenerateRunID()
	absPath, err := filepath.Abs(filepath.Join(RunsDir, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}
	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	latestPath := filepath.Join(RunsDir, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		// The symlink is a convenience; the run itself is fine.
		fmt.Printf("Warning: failed to create latest symlink: %v\n", err)
	}

	return &RunDir{
		Path:      absPath,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}, nil
}

// FilePath returns the absolute path for a file inside the run directory.
func (r *RunDir) FilePath(filename string) string {
	return filepath.Join(r.Path, filename)
}

// CopyConfigFile snapshots the config that produced this run.
func (r *RunDir) CopyConfigFile(srcPath string) error {
	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	destPath := r.FilePath(filepath.Base(srcPath))
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
