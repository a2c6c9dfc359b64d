package journal

import (
	"errors"
	"strings"

	journalerrors "obracheck/internal/journal/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "attendance_sync_logs_pkey" {
			return journalerrors.ErrSyncLogAlreadyRecorded.WithCause(err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "attendance_sync_logs_pkey") {
		return journalerrors.ErrSyncLogAlreadyRecorded.WithCause(err)
	}

	return err
}
