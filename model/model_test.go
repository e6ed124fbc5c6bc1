package model

import (
	"math"
	"testing"
)

func TestBBox_EdgeAccessors(t *testing.T) {
	b := NewBBox(10, 20, 100, 50)

	if b.Left() != 10 {
		t.Errorf("Left: expected 10, got %f", b.Left())
	}
	if b.Right() != 110 {
		t.Errorf("Right: expected 110, got %f", b.Right())
	}
	if b.Top() != 20 {
		t.Errorf("Top: expected 20, got %f", b.Top())
	}
	if b.Bottom() != 70 {
		t.Errorf("Bottom: expected 70, got %f", b.Bottom())
	}
}

func TestBBox_Union(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(20, 20, 10, 10)

	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 30 || u.Height != 30 {
		t.Errorf("Union: got %+v", u)
	}
}

func TestBBox_Intersection(t *testing.T) {
	a := NewBBox(0, 0, 20, 20)
	b := NewBBox(10, 10, 20, 20)

	i := a.Intersection(b)
	if i.X != 10 || i.Y != 10 || i.Width != 10 || i.Height != 10 {
		t.Errorf("Intersection: got %+v", i)
	}

	c := NewBBox(100, 100, 5, 5)
	if !a.Intersection(c).IsEmpty() {
		t.Error("Expected empty intersection for disjoint boxes")
	}
}

func TestBBox_VerticalOverlapRatio(t *testing.T) {
	tests := []struct {
		name     string
		a, b     BBox
		expected float64
	}{
		{
			name:     "identical rows",
			a:        NewBBox(0, 100, 50, 20),
			b:        NewBBox(200, 100, 50, 20),
			expected: 1.0,
		},
		{
			name:     "half overlap",
			a:        NewBBox(0, 100, 50, 20),
			b:        NewBBox(200, 110, 50, 20),
			expected: 0.5,
		},
		{
			name:     "no overlap",
			a:        NewBBox(0, 100, 50, 20),
			b:        NewBBox(0, 200, 50, 20),
			expected: 0,
		},
		{
			name:     "short box fully inside tall box",
			a:        NewBBox(0, 100, 50, 40),
			b:        NewBBox(0, 110, 50, 10),
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.VerticalOverlapRatio(tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
			// Symmetry
			rev := tt.b.VerticalOverlapRatio(tt.a)
			if math.Abs(rev-got) > 1e-9 {
				t.Errorf("Not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestBBox_ContainsBox(t *testing.T) {
	outer := NewBBox(0, 0, 100, 100)
	inner := NewBBox(10, 10, 20, 20)

	if !outer.ContainsBox(inner) {
		t.Error("Expected outer to contain inner")
	}
	if inner.ContainsBox(outer) {
		t.Error("Inner should not contain outer")
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
	}

	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.expected {
			t.Errorf("ClampConfidence(%f): expected %f, got %f", tt.in, tt.expected, got)
		}
	}
}

func TestFragmentsBBox(t *testing.T) {
	fragments := []Fragment{
		{Text: "a", BBox: NewBBox(10, 10, 20, 10)},
		{Text: "b", BBox: NewBBox(40, 8, 30, 12)},
	}

	bbox := FragmentsBBox(fragments)
	if bbox.X != 10 || bbox.Y != 8 || bbox.Right() != 70 || bbox.Bottom() != 20 {
		t.Errorf("Unexpected union bbox: %+v", bbox)
	}

	if !FragmentsBBox(nil).IsEmpty() {
		t.Error("Expected empty bbox for no fragments")
	}
}

func TestMeanConfidence(t *testing.T) {
	fragments := []Fragment{
		{Confidence: 0.8},
		{Confidence: 0.4},
	}

	if got := MeanConfidence(fragments); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Expected 0.6, got %f", got)
	}

	if got := MeanConfidence(nil); got != 0 {
		t.Errorf("Expected 0 for empty set, got %f", got)
	}
}

func TestUnitKind_String(t *testing.T) {
	tests := []struct {
		kind     UnitKind
		expected string
	}{
		{KindTitle, "title"},
		{KindHeading, "heading"},
		{KindParagraph, "paragraph"},
		{KindListItem, "list_item"},
		{KindTableCell, "table_cell"},
		{KindUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestStructuralUnit_SectionType(t *testing.T) {
	u := StructuralUnit{Kind: KindHeading, Level: 2}
	if got := u.SectionType(); got != "heading_2" {
		t.Errorf("Expected heading_2, got %q", got)
	}

	u = StructuralUnit{Kind: KindHeading}
	if got := u.SectionType(); got != "heading_1" {
		t.Errorf("Expected heading_1 fallback, got %q", got)
	}

	u = StructuralUnit{Kind: KindParagraph}
	if got := u.SectionType(); got != "paragraph" {
		t.Errorf("Expected paragraph, got %q", got)
	}
}

func TestContentSection_UpdateContent(t *testing.T) {
	s := ContentSection{
		ID:              1,
		Content:         "original text",
		OriginalContent: "original text",
		Editable:        true,
	}

	if err := s.UpdateContent("edited text"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Content != "edited text" {
		t.Errorf("Content not updated: %q", s.Content)
	}
	if s.OriginalContent != "original text" {
		t.Errorf("OriginalContent mutated: %q", s.OriginalContent)
	}
	if !s.IsModified() {
		t.Error("Expected IsModified to be true")
	}

	if err := s.ResetToOriginal(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.IsModified() {
		t.Error("Expected IsModified to be false after reset")
	}
}

func TestContentSection_NotEditable(t *testing.T) {
	s := ContentSection{
		Content:         "cell",
		OriginalContent: "cell",
		Editable:        false,
	}

	if err := s.UpdateContent("changed"); err != ErrNotEditable {
		t.Errorf("Expected ErrNotEditable, got %v", err)
	}
	if s.Content != "cell" {
		t.Errorf("Locked section was modified: %q", s.Content)
	}
}

func TestOCRMetadata_FailedPages(t *testing.T) {
	m := OCRMetadata{
		PageStatuses: []PageStatus{
			{PageIndex: 0, State: PageOK},
			{PageIndex: 1, State: PageUnprocessable},
			{PageIndex: 2, State: PageEmpty},
			{PageIndex: 3, State: PageLowConfidence},
		},
	}

	failed := m.FailedPages()
	if len(failed) != 2 || failed[0] != 1 || failed[1] != 3 {
		t.Errorf("Unexpected failed pages: %v", failed)
	}
}
