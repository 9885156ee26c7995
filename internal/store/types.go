package store

import "time"

// Scan is one recorded run of the winget scan pipeline.
type Scan struct {
	ID           int64
	StartedAt    time.Time
	Duration     time.Duration
	PackageCount int
	UpdateCount  int
}

// StatusReport is a queued agent status message. Reports that could not be
// delivered to the server stay undelivered and are retried on later ticks.
type StatusReport struct {
	ID         int64
	Status     string
	Message    string
	ReportedAt time.Time
	Delivered  bool
}
