package attendance

import (
	"context"

	attendanceerrors "obracheck/internal/attendance/errors"
	"obracheck/internal/obraapi"
)

// SiteAttendance is what the backend currently holds for one site and day.
type SiteAttendance struct {
	SiteID   int64
	SiteName string
	Date     string
	Records  []Record
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	FindBySiteAndDate(ctx context.Context, siteID int64, date string) (SiteAttendance, error)
	BulkUpsert(ctx context.Context, req obraapi.BulkAttendanceRequest) error
}

type repository struct {
	api obraapi.Client
}

func NewRepository(api obraapi.Client) Repository {
	return &repository{api: api}
}

func (r *repository) FindBySiteAndDate(ctx context.Context, siteID int64, date string) (SiteAttendance, error) {
	res, err := r.api.GetSiteAttendance(ctx, siteID, date)
	if err != nil {
		return SiteAttendance{}, attendanceerrors.ErrFetchAttendance.WithCause(err)
	}

	out := SiteAttendance{
		SiteID:   res.SiteID,
		SiteName: res.SiteName,
		Date:     res.Date,
		Records:  make([]Record, 0, len(res.Items)),
	}
	for _, item := range res.Items {
		status, err := ParseStatus(item.Status)
		if err != nil {
			return SiteAttendance{}, attendanceerrors.ErrUnexpectedRemoteStatus.WithCause(err)
		}

		rec := Record{
			WorkerID:   item.WorkerID,
			WorkerName: item.WorkerName,
			Status:     status,
		}
		if item.CI != nil {
			rec.CI = *item.CI
		}
		if out.SiteName == "" {
			out.SiteName = item.SiteName
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

func (r *repository) BulkUpsert(ctx context.Context, req obraapi.BulkAttendanceRequest) error {
	if err := r.api.BulkUpsertAttendance(ctx, req); err != nil {
		return attendanceerrors.ErrBulkUpsert.WithCause(err)
	}
	return nil
}
