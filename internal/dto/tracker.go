package dto

import (
	"time"

	"github.com/dayatwork/sismo-v2-sub002/internal/core/domain"
)

// StartTrackerRequest defines the payload for starting a time tracker.
type StartTrackerRequest struct {
	TaskNote string `json:"taskNote" binding:"max=500"`
}

// TrackerResponse is the public representation of a tracker item.
type TrackerResponse struct {
	TrackerID       string     `json:"trackerID"`
	UserID          string     `json:"userID"`
	TaskNote        string     `json:"taskNote"`
	StartAt         time.Time  `json:"startAt"`
	EndAt           *time.Time `json:"endAt,omitempty"`
	DurationSeconds int64      `json:"durationSeconds"`
	Running         bool       `json:"running"`
}

// ToTrackerResponse converts a domain.TrackerItem to its DTO, measuring any
// running tracker against now.
func ToTrackerResponse(item *domain.TrackerItem, now time.Time) TrackerResponse {
	return TrackerResponse{
		TrackerID:       item.TrackerID,
		UserID:          item.UserID,
		TaskNote:        item.TaskNote,
		StartAt:         item.StartAt,
		EndAt:           item.EndAt,
		DurationSeconds: int64(item.Duration(now).Seconds()),
		Running:         item.IsRunning(),
	}
}

// TrackerSummaryResponse aggregates tracked time over a period.
type TrackerSummaryResponse struct {
	UserID               string    `json:"userID"`
	From                 time.Time `json:"from"`
	To                   time.Time `json:"to"`
	TotalDurationSeconds int64     `json:"totalDurationSeconds"`
	ItemCount            int       `json:"itemCount"`
}

// ToTrackerSummaryResponse converts a domain.TrackerSummary to its DTO.
func ToTrackerSummaryResponse(summary *domain.TrackerSummary) TrackerSummaryResponse {
	return TrackerSummaryResponse{
		UserID:               summary.UserID,
		From:                 summary.From,
		To:                   summary.To,
		TotalDurationSeconds: int64(summary.TotalDuration.Seconds()),
		ItemCount:            summary.ItemCount,
	}
}
