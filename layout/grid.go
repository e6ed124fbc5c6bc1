package layout

import "sort"

// isGrid reports whether a block's fragments align into a column grid:
// at least minColumns distinct left-edge positions each recurring across
// at least minRows of the block's line-bands. Such blocks are emitted as a
// single table_cell group in row-major order.
//
// alignTolerance is the maximum horizontal distance, in pixels, between
// two left edges considered the same column.
func isGrid(block Block, minColumns, minRows int, alignTolerance float64) bool {
	if len(block.Bands) < minRows {
		return false
	}

	// Collect (left edge, band index) pairs
	type edge struct {
		x    float64
		band int
	}
	var edges []edge
	for bi, band := range block.Bands {
		for _, f := range band.Fragments {
			edges = append(edges, edge{x: f.BBox.Left(), band: bi})
		}
	}
	if len(edges) < minColumns*minRows {
		return false
	}

	sort.Slice(edges, func(i, j int) bool { return edges[i].x < edges[j].x })

	// Sweep into column clusters, counting distinct bands per cluster
	columns := 0
	clusterStart := edges[0].x
	clusterBands := map[int]bool{edges[0].band: true}

	flush := func() {
		if len(clusterBands) >= minRows {
			columns++
		}
	}

	for _, e := range edges[1:] {
		if e.x-clusterStart <= alignTolerance {
			clusterBands[e.band] = true
		} else {
			flush()
			clusterStart = e.x
			clusterBands = map[int]bool{e.band: true}
		}
	}
	flush()

	return columns >= minColumns
}
