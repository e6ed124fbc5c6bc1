package model

import "github.com/google/uuid"

// PageState describes the processing outcome for a single page
type PageState int

const (
	// PageOK means the page produced fragments and sections normally
	PageOK PageState = iota

	// PageEmpty means recognition succeeded but found no text; this is
	// not an error
	PageEmpty

	// PageUnprocessable means the input image was corrupt or zero-size;
	// the page was skipped
	PageUnprocessable

	// PageLowConfidence means recognition failed (error or timeout) even
	// after retry; the page contributed zero fragments
	PageLowConfidence
)

// String returns a string representation of the page state
func (s PageState) String() string {
	switch s {
	case PageOK:
		return "ok"
	case PageEmpty:
		return "empty"
	case PageUnprocessable:
		return "unprocessable"
	case PageLowConfidence:
		return "low_confidence"
	default:
		return "unknown"
	}
}

// PageStatus records the per-page processing outcome and diagnostics
type PageStatus struct {
	// PageIndex is the 0-based page number
	PageIndex int

	// State is the processing outcome
	State PageState

	// Error holds the failure description for unprocessable or
	// low_confidence pages, empty otherwise
	Error string

	// Operations lists the preprocessing transforms applied to the page,
	// in order (e.g. "grayscale", "threshold", "deskew_1.20deg")
	Operations []string

	// FragmentCount is the number of fragments recognized on the page
	FragmentCount int
}

// OCRMetadata is the per-document recognition quality aggregate. It is
// computed once after all fragments are produced and is read-only
// afterward.
type OCRMetadata struct {
	// DocumentID identifies the processed document
	DocumentID uuid.UUID

	// AverageConfidence is the arithmetic mean of all fragment
	// confidences across the document; 0 when no fragments exist
	AverageConfidence float64

	// LowConfidenceSectionIDs lists sections whose mean fragment
	// confidence fell below the reporting threshold. Advisory only.
	LowConfidenceSectionIDs []int

	// PageCount is the number of input pages
	PageCount int

	// PageStatuses holds the per-page outcomes in page order
	PageStatuses []PageStatus
}

// HasLowConfidenceSections reports whether any section was flagged
func (m *OCRMetadata) HasLowConfidenceSections() bool {
	return len(m.LowConfidenceSectionIDs) > 0
}

// FailedPages returns the indices of pages that did not complete normally
func (m *OCRMetadata) FailedPages() []int {
	var failed []int
	for _, ps := range m.PageStatuses {
		if ps.State == PageUnprocessable || ps.State == PageLowConfidence {
			failed = append(failed, ps.PageIndex)
		}
	}
	return failed
}
