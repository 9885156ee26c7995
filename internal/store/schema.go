package store

const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    duration_ms INTEGER NOT NULL,
    package_count INTEGER NOT NULL,
    update_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scan_packages (
    scan_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    pkg_id TEXT,
    current_version TEXT,
    latest_version TEXT,
    update_available BOOLEAN NOT NULL,
    PRIMARY KEY (scan_id, position),
    FOREIGN KEY (scan_id) REFERENCES scans(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS status_reports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    status TEXT NOT NULL,
    message TEXT,
    reported_at TIMESTAMP NOT NULL,
    delivered BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_scan_packages_scan ON scan_packages(scan_id);
CREATE INDEX IF NOT EXISTS idx_scan_packages_updates ON scan_packages(scan_id, update_available);
CREATE INDEX IF NOT EXISTS idx_status_pending ON status_reports(delivered);
`
