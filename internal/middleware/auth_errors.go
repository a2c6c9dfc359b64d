package middleware

import (
	"net/http"

	"obracheck/internal/shared/apperror"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid or malformed token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)
	ErrTooManyCalls  = apperror.New(apperror.CodeTooManyRequests, "Too many requests from this user", http.StatusTooManyRequests)
)
