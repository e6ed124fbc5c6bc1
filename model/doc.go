// Package model defines the core data types shared across the OCR and layout
// reconstruction pipeline.
//
// The types form a strict producer chain:
//
//	Fragment -> StructuralUnit -> ContentSection
//
// A Fragment is a single recognized token with position and confidence. The
// layout analyzer groups Fragments into StructuralUnits (titles, headings,
// paragraphs, list items, table cell groups) in reading order. The section
// builder converts each StructuralUnit into exactly one ContentSection, the
// externally visible editable record. OCRMetadata aggregates per-document
// recognition quality.
//
// All coordinates use the raster convention: origin at the top-left of the
// page, Y increasing downward, units in pixels of the preprocessed image.
package model
