package sections

import (
	"strings"

	"github.com/tsawler/relayout/model"
)

// Config holds configuration for section building
type Config struct {
	// LockSecondaryTables makes table cell groups beyond the document's
	// first table read-only (default: true). Secondary tables are usually
	// repeated headers or continuation fragments and editing them
	// independently corrupts the reconstruction.
	LockSecondaryTables bool
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		LockSecondaryTables: true,
	}
}

// Builder converts structural units into content sections
type Builder struct {
	config Config
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return &Builder{config: DefaultConfig()}
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	return &Builder{config: config}
}

// Build converts units, already in reading order, into sections. IDs are
// assigned sequentially starting at startID; the next unused ID is
// returned so callers aggregating multiple pages pass the counter forward
// by value.
func (b *Builder) Build(units []model.StructuralUnit, startID int) ([]model.ContentSection, int) {
	out := make([]model.ContentSection, 0, len(units))
	id := startID

	for _, u := range units {
		text := UnitText(u)
		out = append(out, model.ContentSection{
			ID:              id,
			Type:            u.SectionType(),
			Content:         text,
			OriginalContent: text,
			StyleToken:      TokenFor(u),
			Editable:        b.editable(u),
			PageIndex:       u.PageIndex,
			Confidence:      u.MeanConfidence(),
			BBox:            u.BBox,
		})
		id++
	}

	return out, id
}

func (b *Builder) editable(u model.StructuralUnit) bool {
	if b.config.LockSecondaryTables && u.Kind == model.KindTableCell && u.TableIndex > 0 {
		return false
	}
	return true
}

// UnitText assembles a unit's text: fragments joined with single spaces,
// line-band boundaries rendered as newlines.
func UnitText(u model.StructuralUnit) string {
	if len(u.Lines) == 0 {
		return joinFragments(u.Fragments)
	}

	lines := make([]string, 0, len(u.Lines))
	for _, band := range u.Lines {
		if len(band) == 0 {
			continue
		}
		lines = append(lines, joinFragments(band))
	}
	return strings.Join(lines, "\n")
}

func joinFragments(fragments []model.Fragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}
