package journal

import (
	"time"

	"github.com/google/uuid"
)

// SyncLog is one bulk upsert attempt against the ObraCheck backend.
type SyncLog struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SiteID         int64     `gorm:"column:site_id;not null;index:idx_sync_logs_site_date"`
	AttendanceDate string    `gorm:"column:attendance_date;type:date;not null;index:idx_sync_logs_site_date"`
	ItemCount      int       `gorm:"column:item_count;not null"`
	Status         string    `gorm:"column:status;type:varchar(20);not null"`
	ErrorMessage   *string   `gorm:"column:error_message;type:text"`
	RequestID      string    `gorm:"column:request_id;type:varchar(64)"`
	UserID         string    `gorm:"column:user_id;type:varchar(64)"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index"`
}

func (SyncLog) TableName() string {
	return "attendance_sync_logs"
}
