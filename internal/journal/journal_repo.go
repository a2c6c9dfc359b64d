package journal

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=journal_repo.go -destination=mock/journal_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, log *SyncLog) error
	FindBySiteAndDate(ctx context.Context, siteID int64, date string, limit int) ([]SyncLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn runs statements on the bound *sql.Tx when there is one, so journal rows
// and outbox rows commit together.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, log *SyncLog) error {
	return r.conn(ctx).Create(log).Error
}

func (r *repository) FindBySiteAndDate(ctx context.Context, siteID int64, date string, limit int) ([]SyncLog, error) {
	var rows []SyncLog
	err := r.conn(ctx).
		Where("site_id = ?", siteID).
		Where("attendance_date = ?", date).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.conn(ctx).
		Where("created_at < ?", cutoff).
		Delete(&SyncLog{})
	return res.RowsAffected, res.Error
}
