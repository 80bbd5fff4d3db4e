package models

import "time"

// TrackerItem represents a time tracker row.
type TrackerItem struct {
	TrackerID      string     `db:"tracker_id"`
	OrganizationID string     `db:"organization_id"`
	UserID         string     `db:"user_id"`
	TaskNote       string     `db:"task_note"`
	StartAt        time.Time  `db:"start_at"`
	EndAt          *time.Time `db:"end_at"` // NULL while running
	AuditFields
}
