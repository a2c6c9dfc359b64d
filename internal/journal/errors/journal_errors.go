package journalerrors

import (
	"net/http"

	"obracheck/internal/shared/apperror"
)

var (
	ErrJournalDisabled = apperror.New(
		apperror.CodeServiceUnavailable,
		"sync journal is not configured",
		http.StatusServiceUnavailable,
	)
	ErrInvalidSiteID = apperror.New(
		apperror.CodeInvalidInput,
		"siteId must be a positive integer",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrSyncLogAlreadyRecorded = apperror.New(
		apperror.CodeConflict,
		"sync log already recorded",
		http.StatusConflict,
	)
)
