package relayout

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/sections"
)

// Result is the reconstructed document: its sections in reading order, the
// style catalog resolving the sections' style tokens, and the recognition
// quality metadata.
type Result struct {
	// DocumentID identifies this processing run
	DocumentID uuid.UUID

	// Sections are the document's content sections in page-then-block
	// reading order
	Sections []model.ContentSection

	// StyleCatalog maps the sections' opaque style tokens to inferred
	// formatting, for the downstream document generator
	StyleCatalog sections.StyleCatalog

	// Metadata is the per-document recognition quality aggregate
	Metadata model.OCRMetadata
}

// Section returns the section with the given ID
func (r *Result) Section(id int) (*model.ContentSection, bool) {
	for i := range r.Sections {
		if r.Sections[i].ID == id {
			return &r.Sections[i], true
		}
	}
	return nil, false
}

// SectionsOnPage returns the sections originating from one page, in order
func (r *Result) SectionsOnPage(pageIndex int) []model.ContentSection {
	var out []model.ContentSection
	for _, s := range r.Sections {
		if s.PageIndex == pageIndex {
			out = append(out, s)
		}
	}
	return out
}

// Text returns the document's plain text, sections separated by blank
// lines.
func (r *Result) Text() string {
	parts := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		parts = append(parts, s.Content)
	}
	return strings.Join(parts, "\n\n")
}
