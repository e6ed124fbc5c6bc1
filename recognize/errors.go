package recognize

import (
	"errors"
	"fmt"
)

// RecognitionError reports that the external OCR call for a page errored
// or timed out. The pipeline retries the page once at reduced DPI before
// marking it low_confidence.
type RecognitionError struct {
	// Page is the 0-based page index that failed
	Page int

	// Err is the underlying engine or context error
	Err error
}

// Error implements the error interface
func (e *RecognitionError) Error() string {
	return fmt.Sprintf("recognition failed on page %d: %v", e.Page, e.Err)
}

// Unwrap returns the underlying error
func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// AsRecognitionError extracts a RecognitionError from an error chain
func AsRecognitionError(err error) (*RecognitionError, bool) {
	var re *RecognitionError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
