// Package sections converts structural units into the externally visible
// content sections of a document. Each unit maps to exactly one section
// with a stable sequential ID, an immutable original-content snapshot, and
// an opaque style token resolvable through the document's style catalog.
package sections
