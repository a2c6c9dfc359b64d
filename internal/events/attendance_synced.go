package events

import (
	"strconv"
	"time"
)

const AttendanceSyncedTopic = "obracheck.attendance.synced.v1"

const (
	EventTypeAttendanceSynced = "attendance_synced"

	SyncStatusSucceeded = "SUCCEEDED"
	SyncStatusFailed    = "FAILED"
)

// AttendanceSyncedEvent is emitted once per bulk upsert attempt, whatever its
// outcome.
type AttendanceSyncedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	SyncID     string    `json:"sync_id"`
	SiteID     int64     `json:"site_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	ItemCount  int       `json:"item_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RosterAggregateID is the kafka key for a roster: all events of one
// (site, date) land on the same partition.
func RosterAggregateID(siteID int64, date string) string {
	return strconv.FormatInt(siteID, 10) + ":" + date
}
