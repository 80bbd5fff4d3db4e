package domain

import "time"

// TrackerItem records a contiguous span of tracked work time for a user.
// EndAt is nil while the tracker is still running.
type TrackerItem struct {
	TrackerID      string     `json:"trackerID"`      // Primary Key (e.g., UUID)
	OrganizationID string     `json:"organizationID"` // FK -> organizations.organization_id
	UserID         string     `json:"userID"`
	TaskNote       string     `json:"taskNote"`
	StartAt        time.Time  `json:"startAt"`
	EndAt          *time.Time `json:"endAt,omitempty"`
	AuditFields
}

// IsRunning reports whether the tracker has not been stopped yet.
func (t TrackerItem) IsRunning() bool {
	return t.EndAt == nil
}

// Duration returns the tracked span. A running tracker is measured against
// the supplied now so callers control the clock.
func (t TrackerItem) Duration(now time.Time) time.Duration {
	end := now
	if t.EndAt != nil {
		end = *t.EndAt
	}
	if end.Before(t.StartAt) {
		return 0
	}
	return end.Sub(t.StartAt)
}

// TrackerSummary aggregates tracked durations for a user over a period.
type TrackerSummary struct {
	UserID        string        `json:"userID"`
	From          time.Time     `json:"from"`
	To            time.Time     `json:"to"`
	TotalDuration time.Duration `json:"totalDuration"`
	ItemCount     int           `json:"itemCount"`
}
