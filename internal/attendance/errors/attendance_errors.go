package attendanceerrors

import (
	"net/http"

	"obracheck/internal/shared/apperror"
)

var (
	ErrInvalidSiteID = apperror.New(
		apperror.CodeInvalidInput,
		"siteId must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"workerId must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeValidationError,
		"status must be one of NOT_RECORDED, PRESENT, ABSENT, LATE",
		http.StatusBadRequest,
	)
	ErrWorkerNotInRoster = apperror.New(
		apperror.CodeNotFound,
		"worker is not part of the loaded roster",
		http.StatusNotFound,
	)
	ErrRosterNotLoaded = apperror.New(
		apperror.CodeNotFound,
		"no roster loaded for this site and date",
		http.StatusNotFound,
	)
	ErrUnexpectedRemoteStatus = apperror.New(
		apperror.CodeUpstreamError,
		"backend returned an unknown attendance status",
		http.StatusBadGateway,
	)
	ErrFetchAttendance = apperror.New(
		apperror.CodeUpstreamError,
		"failed to fetch site attendance",
		http.StatusBadGateway,
	)
	ErrBulkUpsert = apperror.New(
		apperror.CodeUpstreamError,
		"failed to sync attendance",
		http.StatusBadGateway,
	)
)
