package store

import (
	"database/sql"
	"time"
)

// InsertScan inserts a scan record and returns its ID.
func (db *DB) InsertScan(s *Scan) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO scans
		(started_at, kind, duration_ms, base_folders, projects_found, cache_hit, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.StartedAt.UTC().Format(time.RFC3339), s.Kind, s.DurationMs,
		s.BaseFolders, s.ProjectsFound, s.CacheHit, s.Error,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertScanProjects inserts the projects recorded with a scan in a single
// transaction.
func (db *DB) InsertScanProjects(scanID int64, projects []ScanProject) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range projects {
		if _, err := tx.Exec(
			"INSERT INTO scan_projects (scan_id, full_path, name) VALUES (?, ?, ?)",
			scanID, p.FullPath, p.Name,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetScan returns a scan by ID, or nil if it does not exist.
func (db *DB) GetScan(id int64) (*Scan, error) {
	row := db.conn.QueryRow(
		`SELECT id, started_at, kind, duration_ms, base_folders, projects_found, cache_hit, error
		 FROM scans WHERE id = ?`, id,
	)
	return scanScan(row)
}

// LatestScan returns the most recent scan for a kind, or nil if none exist.
func (db *DB) LatestScan(kind string) (*Scan, error) {
	row := db.conn.QueryRow(
		`SELECT id, started_at, kind, duration_ms, base_folders, projects_found, cache_hit, error
		 FROM scans WHERE kind = ? ORDER BY id DESC LIMIT 1`, kind,
	)
	return scanScan(row)
}

// PreviousScan returns the most recent scan for a kind before the given ID,
// or nil if none exist. Used to compute project count deltas.
func (db *DB) PreviousScan(kind string, beforeID int64) (*Scan, error) {
	row := db.conn.QueryRow(
		`SELECT id, started_at, kind, duration_ms, base_folders, projects_found, cache_hit, error
		 FROM scans WHERE kind = ? AND id < ? ORDER BY id DESC LIMIT 1`,
		kind, beforeID,
	)
	return scanScan(row)
}

// RecentScans returns the most recent scans across all kinds, newest first.
func (db *DB) RecentScans(limit int) ([]Scan, error) {
	return db.queryScans(
		`SELECT id, started_at, kind, duration_ms, base_folders, projects_found, cache_hit, error
		 FROM scans ORDER BY id DESC LIMIT ?`, limit,
	)
}

// RecentScansByKind returns the most recent scans for one kind, newest
// first.
func (db *DB) RecentScansByKind(kind string, limit int) ([]Scan, error) {
	return db.queryScans(
		`SELECT id, started_at, kind, duration_ms, base_folders, projects_found, cache_hit, error
		 FROM scans WHERE kind = ? ORDER BY id DESC LIMIT ?`, kind, limit,
	)
}

// ScanProjects returns the projects recorded with a scan.
func (db *DB) ScanProjects(scanID int64) ([]ScanProject, error) {
	rows, err := db.conn.Query(
		"SELECT id, scan_id, full_path, name FROM scan_projects WHERE scan_id = ? ORDER BY id",
		scanID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var projects []ScanProject
	for rows.Next() {
		var p ScanProject
		if err := rows.Scan(&p.ID, &p.ScanID, &p.FullPath, &p.Name); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (db *DB) queryScans(query string, args ...any) ([]Scan, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scans []Scan
	for rows.Next() {
		s, err := scanScanRows(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, *s)
	}
	return scans, rows.Err()
}

func scanScan(row *sql.Row) (*Scan, error) {
	var s Scan
	var startedAt string
	var errText sql.NullString
	err := row.Scan(&s.ID, &startedAt, &s.Kind, &s.DurationMs,
		&s.BaseFolders, &s.ProjectsFound, &s.CacheHit, &errText)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	s.Error = errText.String
	return &s, nil
}

func scanScanRows(rows *sql.Rows) (*Scan, error) {
	var s Scan
	var startedAt string
	var errText sql.NullString
	if err := rows.Scan(&s.ID, &startedAt, &s.Kind, &s.DurationMs,
		&s.BaseFolders, &s.ProjectsFound, &s.CacheHit, &errText); err != nil {
		return nil, err
	}
	s.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	s.Error = errText.String
	return &s, nil
}
