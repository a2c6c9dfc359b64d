package reporterrors

import (
	"net/http"

	"obracheck/internal/shared/apperror"
)

var (
	ErrUnsupportedFormat = apperror.New(
		apperror.CodeInvalidInput,
		"format must be pdf or xlsx",
		http.StatusBadRequest,
	)
	ErrRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to render attendance report",
		http.StatusInternalServerError,
	)
)
