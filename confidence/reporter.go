// Package confidence aggregates recognition quality into the document's
// metadata record. The report is advisory: low-confidence flags steer a
// reviewer's attention and never suppress content.
package confidence

import (
	"github.com/google/uuid"

	"github.com/tsawler/relayout/model"
)

// Config holds configuration for confidence reporting
type Config struct {
	// LowConfidenceThreshold is the mean fragment confidence below which a
	// section is flagged for review (default: 0.60)
	LowConfidenceThreshold float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		LowConfidenceThreshold: 0.60,
	}
}

// Reporter computes per-document confidence metadata
type Reporter struct {
	config Config
}

// NewReporter creates a reporter with default configuration
func NewReporter() *Reporter {
	return &Reporter{config: DefaultConfig()}
}

// NewReporterWithConfig creates a reporter with custom configuration
func NewReporterWithConfig(config Config) *Reporter {
	return &Reporter{config: config}
}

// Report builds the document's metadata aggregate. fragments are every
// fragment recognized across all pages; sections carry their own mean
// confidences from building. Page statuses pass through in page order.
func (r *Reporter) Report(documentID uuid.UUID, fragments []model.Fragment,
	sections []model.ContentSection, statuses []model.PageStatus) model.OCRMetadata {

	// Non-nil even when empty, so the field serializes as a list
	flagged := make([]int, 0)
	for _, s := range sections {
		if s.Confidence < r.config.LowConfidenceThreshold {
			flagged = append(flagged, s.ID)
		}
	}

	return model.OCRMetadata{
		DocumentID:              documentID,
		AverageConfidence:       model.MeanConfidence(fragments),
		LowConfidenceSectionIDs: flagged,
		PageCount:               len(statuses),
		PageStatuses:            statuses,
	}
}
