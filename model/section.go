package model

import (
	"errors"
	"strings"
)

// ErrNotEditable is returned when attempting to modify a locked section.
var ErrNotEditable = errors.New("section is not editable")

// ContentSection is the externally visible editable unit of a document.
// Each section traces back to exactly one StructuralUnit. Content is the
// only field mutated after creation; OriginalContent and StyleToken are
// fixed for the lifetime of the document record.
type ContentSection struct {
	// ID is unique per document and stable for the document's lifetime
	ID int

	// Type is the section type string ("title", "heading_1", "paragraph",
	// "list_item", "table_cell")
	Type string

	// Content is the editable text
	Content string

	// OriginalContent is the immutable snapshot taken at ingestion
	OriginalContent string

	// StyleToken is an opaque formatting reference resolved only by the
	// external document generator. Callers must not parse it.
	StyleToken string

	// Editable reports whether the editing collaborator may modify Content
	Editable bool

	// PageIndex is the 0-based page the section originated from
	PageIndex int

	// Confidence is the mean recognition confidence of the section's
	// source fragments
	Confidence float64

	// BBox is the source unit's bounding box on its page
	BBox BBox
}

// UpdateContent replaces the section's editable content. Returns
// ErrNotEditable for locked sections. OriginalContent is never touched.
func (s *ContentSection) UpdateContent(content string) error {
	if !s.Editable {
		return ErrNotEditable
	}
	s.Content = content
	return nil
}

// ResetToOriginal restores Content to the ingestion-time snapshot.
func (s *ContentSection) ResetToOriginal() error {
	if !s.Editable {
		return ErrNotEditable
	}
	s.Content = s.OriginalContent
	return nil
}

// IsModified reports whether the content differs from the original snapshot
func (s *ContentSection) IsModified() bool {
	return s.Content != s.OriginalContent
}

// IsEmpty reports whether the section has no visible content
func (s *ContentSection) IsEmpty() bool {
	return strings.TrimSpace(s.Content) == ""
}

// WordCount returns an approximate word count of the current content
func (s *ContentSection) WordCount() int {
	return len(strings.Fields(s.Content))
}
