// Package store provides SQLite database access for projscout scan history.
package store

import "time"

// Scan represents one completed locate operation for a single kind.
type Scan struct {
	ID            int64     `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Kind          string    `json:"kind"`
	DurationMs    int64     `json:"duration_ms"`
	BaseFolders   string    `json:"base_folders"`
	ProjectsFound int       `json:"projects_found"`
	CacheHit      bool      `json:"cache_hit"`
	Error         string    `json:"error,omitempty"`
}

// ScanProject is one project recorded with a scan.
type ScanProject struct {
	ID       int64  `json:"id"`
	ScanID   int64  `json:"scan_id"`
	FullPath string `json:"fullPath"`
	Name     string `json:"name"`
}

// ScanDelta represents the change in project count between two scans of the
// same kind.
type ScanDelta struct {
	Previous *Scan `json:"previous"`
	Current  *Scan `json:"current"`
	Delta    int   `json:"delta"`
}
