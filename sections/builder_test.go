package sections

import (
	"testing"

	"github.com/tsawler/relayout/model"
)

func makeUnit(kind model.UnitKind, level int, lines ...[]model.Fragment) model.StructuralUnit {
	var all []model.Fragment
	for _, band := range lines {
		all = append(all, band...)
	}
	return model.StructuralUnit{
		Kind:       kind,
		Level:      level,
		Fragments:  all,
		Lines:      lines,
		BBox:       model.FragmentsBBox(all),
		TableIndex: -1,
	}
}

func frag(text string, confidence float64) model.Fragment {
	return model.Fragment{Text: text, Confidence: confidence,
		BBox: model.BBox{X: 0, Y: 0, Width: float64(len(text)) * 8, Height: 12}}
}

func TestBuild_SequentialIDs(t *testing.T) {
	builder := NewBuilder()
	units := []model.StructuralUnit{
		makeUnit(model.KindHeading, 1, []model.Fragment{frag("Intro", 0.9)}),
		makeUnit(model.KindParagraph, 0, []model.Fragment{frag("Body", 0.9)}),
	}

	sections, next := builder.Build(units, 0)

	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}
	if sections[0].ID != 0 || sections[1].ID != 1 {
		t.Errorf("Expected IDs 0 and 1, got %d and %d", sections[0].ID, sections[1].ID)
	}
	if next != 2 {
		t.Errorf("Expected next ID 2, got %d", next)
	}

	// The counter passes forward by value across pages
	more, next := builder.Build(units[:1], next)
	if more[0].ID != 2 || next != 3 {
		t.Errorf("Expected continuation at ID 2, got %d (next %d)", more[0].ID, next)
	}
}

func TestBuild_ContentJoining(t *testing.T) {
	builder := NewBuilder()
	unit := makeUnit(model.KindParagraph, 0,
		[]model.Fragment{frag("The", 0.9), frag("quick", 0.9), frag("fox", 0.9)},
		[]model.Fragment{frag("jumped", 0.9), frag("over", 0.9)},
	)

	sections, _ := builder.Build([]model.StructuralUnit{unit}, 0)

	want := "The quick fox\njumped over"
	if sections[0].Content != want {
		t.Errorf("Expected %q, got %q", want, sections[0].Content)
	}
	if sections[0].OriginalContent != want {
		t.Errorf("Original content should match content at build time, got %q", sections[0].OriginalContent)
	}
}

func TestBuild_TypeAndConfidence(t *testing.T) {
	builder := NewBuilder()
	units := []model.StructuralUnit{
		makeUnit(model.KindTitle, 0, []model.Fragment{frag("Report", 0.8)}),
		makeUnit(model.KindHeading, 2, []model.Fragment{frag("Scope", 0.6), frag("Notes", 1.0)}),
	}

	sections, _ := builder.Build(units, 0)

	if sections[0].Type != "title" {
		t.Errorf("Expected type title, got %s", sections[0].Type)
	}
	if sections[1].Type != "heading_2" {
		t.Errorf("Expected type heading_2, got %s", sections[1].Type)
	}
	if sections[1].Confidence != 0.8 {
		t.Errorf("Expected mean confidence 0.8, got %v", sections[1].Confidence)
	}
}

func TestBuild_SecondaryTablesLocked(t *testing.T) {
	builder := NewBuilder()

	first := makeUnit(model.KindTableCell, 0, []model.Fragment{frag("a", 0.9)})
	first.TableIndex = 0
	second := makeUnit(model.KindTableCell, 0, []model.Fragment{frag("b", 0.9)})
	second.TableIndex = 1

	sections, _ := builder.Build([]model.StructuralUnit{first, second}, 0)

	if !sections[0].Editable {
		t.Error("Primary table should be editable")
	}
	if sections[1].Editable {
		t.Error("Secondary table should be locked")
	}

	if err := sections[1].UpdateContent("x"); err != model.ErrNotEditable {
		t.Errorf("Expected ErrNotEditable, got %v", err)
	}
}

func TestBuild_LockingDisabled(t *testing.T) {
	builder := NewBuilderWithConfig(Config{LockSecondaryTables: false})

	unit := makeUnit(model.KindTableCell, 0, []model.Fragment{frag("b", 0.9)})
	unit.TableIndex = 3

	sections, _ := builder.Build([]model.StructuralUnit{unit}, 0)

	if !sections[0].Editable {
		t.Error("Expected editable section when locking is disabled")
	}
}

func TestUnitText_NoLines(t *testing.T) {
	unit := model.StructuralUnit{
		Fragments: []model.Fragment{frag("just", 0.9), frag("fragments", 0.9)},
	}
	if got := UnitText(unit); got != "just fragments" {
		t.Errorf("Expected fallback join, got %q", got)
	}
}
