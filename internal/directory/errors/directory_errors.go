package directoryerrors

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
	ErrFetchDirectory = apperror.New(
		apperror.CodeUpstreamError,
		"failed to fetch worker directory",
		http.StatusBadGateway,
	)
)
