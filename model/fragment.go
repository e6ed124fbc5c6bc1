package model

import "strings"

// Fragment represents a single recognized token with position and confidence.
// Fragments are produced by the recognition engine and are immutable once
// created.
type Fragment struct {
	// Text is the recognized token text
	Text string

	// BBox is the token's bounding box in page-relative raster coordinates
	BBox BBox

	// Confidence is the recognition confidence, always in [0, 1]
	Confidence float64

	// PageIndex is the 0-based page this fragment belongs to
	PageIndex int
}

// ClampConfidence returns a confidence value forced into [0, 1].
// Providers occasionally report values slightly outside the range
// (e.g. Tesseract's -1 for unrecognized regions).
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// IsEmpty returns true if the fragment has no visible text
func (f Fragment) IsEmpty() bool {
	return strings.TrimSpace(f.Text) == ""
}

// FragmentsBBox returns the union bounding box of a set of fragments.
// Returns the zero BBox for an empty set.
func FragmentsBBox(fragments []Fragment) BBox {
	if len(fragments) == 0 {
		return BBox{}
	}

	bbox := fragments[0].BBox
	for _, f := range fragments[1:] {
		bbox = bbox.Union(f.BBox)
	}
	return bbox
}

// MeanConfidence returns the arithmetic mean confidence of a set of
// fragments, or 0 for an empty set.
func MeanConfidence(fragments []Fragment) float64 {
	if len(fragments) == 0 {
		return 0
	}

	total := 0.0
	for _, f := range fragments {
		total += f.Confidence
	}
	return total / float64(len(fragments))
}
