package services

import (
	"errors"
	"fmt"
)

var (
	ErrQuotaExceeded   = errors.New("daily API limit reached")
	ErrRateLimited     = errors.New("upstream rate limit reached")
	ErrTickerNotFound  = errors.New("ticker symbol not found")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNotConfigured   = errors.New("api key not configured")
	ErrNoData          = errors.New("no data could be extracted")
	ErrValidation      = errors.New("validation failed")
)

// UpstreamError carries what a third-party service returned so handlers can
// pass it through to the client.
type UpstreamError struct {
	Err        error
	StatusCode int
	Details    any
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v (status %d)", e.Err, e.StatusCode)
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d problem(s)", len(e.Problems))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
