// Package layout groups recognized text fragments into structural units.
//
// Analysis runs in three stages, each with its own detector and
// configuration:
//
//  1. Line grouping: fragments whose vertical bounding-box overlap exceeds
//     a configurable ratio of the shorter box's height are clustered into
//     line-bands, ordered left to right within a band.
//  2. Block grouping: consecutive line-bands merge into a block when the
//     vertical gap between them stays below a threshold expressed relative
//     to the median line height on the page; a larger gap starts a new
//     block.
//  3. Role classification: blocks are classified as title, heading (with
//     level), list item, table cell group, or paragraph using relative
//     font-size tiers, word counts, prefix patterns, and grid alignment.
//
// Units are emitted in reading order: top to bottom, left to right within
// a band, and column by column when a two-column page is detected. Pages
// are analyzed independently; a PageContext value carries the small amount
// of cross-page state (heading size ladder, title assignment, table
// numbering) explicitly, so parallel page analysis stays deterministic.
//
// Every threshold in this package is configuration, not a constant:
// optimal values are corpus-dependent and should be tuned against labeled
// samples.
package layout
