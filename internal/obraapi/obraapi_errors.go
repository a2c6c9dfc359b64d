package obraapi

import "fmt"

// StatusError is returned for any non-2xx answer from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("obra api %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("obra api %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
