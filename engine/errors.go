/*
errors.go - Centralized error types for the quoting engine

PURPOSE:
  All error types in one place for consistency and discoverability. The
  calculation pipeline itself has no failure modes - missing data
  defaults to zero and division is guarded - so the errors here belong
  to the quote lifecycle and the storage boundary.

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, engine.ErrQuoteFinalized) {
        // reject the edit with 409
    }
*/
package engine

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrQuoteFinalized is returned when editing a quote that has been
	// handed to the export boundary. Finalized quotes are read-only.
	ErrQuoteFinalized = errors.New("quote is finalized")

	// ErrSegmentNotFound is returned when a segment ID does not exist on
	// the quote.
	ErrSegmentNotFound = errors.New("segment not found")

	// ErrQuoteNotFound is returned when a referenced quote doesn't exist.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrHubNotFound is returned when a referenced hub doesn't exist.
	ErrHubNotFound = errors.New("hub not found")

	// ErrSettingsNotFound is returned when no settings document has been
	// saved yet. Callers fall back to the default preset.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrMissingHubRole is returned when a selected hub lacks the role
	// its topology slot requires.
	ErrMissingHubRole = errors.New("hub lacks required role")

	// ErrInvalidPlanInput is returned when the planning inputs cannot
	// produce a quote (unknown tier or service model).
	ErrInvalidPlanInput = errors.New("invalid plan input")
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuoteNotFound) ||
		errors.Is(err, ErrHubNotFound) ||
		errors.Is(err, ErrSegmentNotFound) ||
		errors.Is(err, ErrSettingsNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrQuoteFinalized) ||
		errors.Is(err, ErrMissingHubRole) ||
		errors.Is(err, ErrInvalidPlanInput)
}
