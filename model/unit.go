package model

import "fmt"

// UnitKind represents the structural role of a grouped block of fragments
type UnitKind int

const (
	KindUnknown UnitKind = iota
	KindTitle
	KindHeading
	KindParagraph
	KindListItem
	KindTableCell
)

// String returns a string representation of the unit kind
func (k UnitKind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindListItem:
		return "list_item"
	case KindTableCell:
		return "table_cell"
	default:
		return "unknown"
	}
}

// TextAlignment represents the estimated horizontal alignment of a unit
type TextAlignment int

const (
	AlignUnknown TextAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns a string representation of the alignment
func (a TextAlignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// EstimatedStyle holds formatting estimated from geometry alone. Scanned
// input carries no font information, so size and weight are proxies derived
// from bounding-box heights.
type EstimatedStyle struct {
	// FontSizeProxy is the estimated font size derived from fragment heights
	FontSizeProxy float64

	// BoldProxy is true when the unit's size proxy is well above the
	// document median, suggesting emphasized text
	BoldProxy bool

	// Alignment is the estimated horizontal alignment on the page
	Alignment TextAlignment
}

// StructuralUnit is a geometrically grouped cluster of fragments with an
// inferred structural role. Units within a document are totally ordered by
// reading order (top-to-bottom, left-to-right within a line-band).
type StructuralUnit struct {
	// Kind is the inferred structural role
	Kind UnitKind

	// Level is the heading level (1-3) when Kind is KindHeading, 0 otherwise
	Level int

	// Fragments are the member tokens in reading order
	Fragments []Fragment

	// Lines groups the fragments into line-bands; each inner slice is one
	// band, ordered left to right. Band boundaries become newlines when the
	// unit's text is assembled.
	Lines [][]Fragment

	// BBox is the union bounding box of all member fragments
	BBox BBox

	// Style is the geometry-derived style estimate
	Style EstimatedStyle

	// PageIndex is the 0-based page this unit belongs to
	PageIndex int

	// TableIndex identifies which table a table_cell group belongs to
	// (0-based, per document); -1 for non-table units
	TableIndex int
}

// SectionType returns the external section type string for this unit.
// Headings encode their level, e.g. "heading_2".
func (u StructuralUnit) SectionType() string {
	if u.Kind == KindHeading {
		level := u.Level
		if level < 1 {
			level = 1
		}
		return fmt.Sprintf("heading_%d", level)
	}
	return u.Kind.String()
}

// FragmentCount returns the number of fragments in the unit
func (u StructuralUnit) FragmentCount() int {
	return len(u.Fragments)
}

// MeanConfidence returns the mean recognition confidence of the unit's
// fragments, or 0 for an empty unit.
func (u StructuralUnit) MeanConfidence() float64 {
	return MeanConfidence(u.Fragments)
}
