package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/winghq/wingman/internal/winget"
)

// ErrNoScans is returned when scan history is queried before any scan ran.
var ErrNoScans = errors.New("no scans recorded")

// InsertScan records a completed scan and its result rows in a single
// transaction, preserving the installed-table order via the position column.
// It returns the new scan id.
func (s *Store) InsertScan(startedAt time.Time, duration time.Duration, statuses []winget.UpdateStatus) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO scans (started_at, duration_ms, package_count, update_count) VALUES (?, ?, ?, ?)`,
		startedAt.Format(time.RFC3339),
		duration.Milliseconds(),
		len(statuses),
		winget.CountUpdates(statuses),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan: %w", err)
	}

	scanID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get scan id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO scan_packages (scan_id, position, name, pkg_id, current_version, latest_version, update_available)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare package insert: %w", err)
	}
	defer stmt.Close()

	for i, st := range statuses {
		if _, err := stmt.Exec(scanID, i, st.Name, st.ID, st.CurrentVersion, st.LatestVersion, st.UpdateAvailable); err != nil {
			return 0, fmt.Errorf("failed to insert package %s: %w", st.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scan: %w", err)
	}

	return scanID, nil
}

// LatestScan returns the most recent scan, or ErrNoScans.
func (s *Store) LatestScan() (*Scan, error) {
	row := s.db.QueryRow(
		`SELECT id, started_at, duration_ms, package_count, update_count
		 FROM scans ORDER BY id DESC LIMIT 1`,
	)

	var scan Scan
	var startedAt string
	var durationMS int64
	err := row.Scan(&scan.ID, &startedAt, &durationMS, &scan.PackageCount, &scan.UpdateCount)
	if err == sql.ErrNoRows {
		return nil, ErrNoScans
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest scan: %w", err)
	}

	scan.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scan timestamp: %w", err)
	}
	scan.Duration = time.Duration(durationMS) * time.Millisecond

	return &scan, nil
}

// ScanPackages returns the result rows of a scan in their original
// installed-table order.
func (s *Store) ScanPackages(scanID int64) ([]winget.UpdateStatus, error) {
	rows, err := s.db.Query(
		`SELECT name, pkg_id, current_version, latest_version, update_available
		 FROM scan_packages WHERE scan_id = ? ORDER BY position`,
		scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan packages: %w", err)
	}
	defer rows.Close()

	var statuses []winget.UpdateStatus
	for rows.Next() {
		var st winget.UpdateStatus
		if err := rows.Scan(&st.Name, &st.ID, &st.CurrentVersion, &st.LatestVersion, &st.UpdateAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan package row: %w", err)
		}
		statuses = append(statuses, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scan packages: %w", err)
	}

	return statuses, nil
}

// PruneScans deletes all but the newest keep scans; result rows cascade.
func (s *Store) PruneScans(keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM scans WHERE id NOT IN (SELECT id FROM scans ORDER BY id DESC LIMIT ?)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune scans: %w", err)
	}
	return nil
}

// EnqueueReport stores a status report that could not be delivered.
func (s *Store) EnqueueReport(status, message string, reportedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO status_reports (status, message, reported_at, delivered) VALUES (?, ?, ?, 0)`,
		status, message, reportedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue report: %w", err)
	}
	return nil
}

// PendingReports returns undelivered status reports, oldest first.
func (s *Store) PendingReports() ([]*StatusReport, error) {
	rows, err := s.db.Query(
		`SELECT id, status, message, reported_at, delivered
		 FROM status_reports WHERE delivered = 0 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reports: %w", err)
	}
	defer rows.Close()

	var reports []*StatusReport
	for rows.Next() {
		var r StatusReport
		var reportedAt string
		if err := rows.Scan(&r.ID, &r.Status, &r.Message, &reportedAt, &r.Delivered); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		r.ReportedAt, err = time.Parse(time.RFC3339, reportedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse report timestamp: %w", err)
		}
		reports = append(reports, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// MarkReportDelivered flags a queued report as delivered.
func (s *Store) MarkReportDelivered(id int64) error {
	_, err := s.db.Exec(`UPDATE status_reports SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark report %d delivered: %w", id, err)
	}
	return nil
}
