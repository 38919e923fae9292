package app

import (
	"errors"
	"fmt"
)

// Validation errors. The operation is refused and no state changes.
var (
	ErrEmptyName       = errors.New("name required")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrEmptyCredential = errors.New("API key required")
	ErrInvalidTheme    = errors.New("invalid theme")
)

// Lookup errors.
var (
	ErrMartNotFound    = errors.New("mart not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrSessionNotFound = errors.New("analysis session not found")
	ErrResultNotFound  = errors.New("analysis result not found")
)

// ErrPinLimit is returned when pinning would exceed model.MaxPinned.
var ErrPinLimit = errors.New("at most 20 items can be pinned")

// ErrAnalysisFailed is the single failure reported for image analysis. The
// underlying cause is logged, not returned.
var ErrAnalysisFailed = errors.New("image analysis failed, check that the API key is valid")

// ErrNoCredential means analysis was requested before an API key was saved.
var ErrNoCredential = fmt.Errorf("%w: no API key saved", ErrAnalysisFailed)

// ErrAnalysisBusy is returned when a session already has an analysis in flight.
var ErrAnalysisBusy = errors.New("analysis already in progress")
