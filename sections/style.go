package sections

import (
	"sort"

	"github.com/tsawler/relayout/model"
)

// Style token vocabulary. Tokens are opaque to callers; the catalog is the
// only sanctioned way to resolve one.
const (
	TokenTitle = "title"
	TokenH1    = "h1"
	TokenH2    = "h2"
	TokenH3    = "h3"
	TokenBody  = "body"
	TokenList  = "list"
	TokenTable = "table"
)

// TokenFor returns the style token for a unit
func TokenFor(u model.StructuralUnit) string {
	switch u.Kind {
	case model.KindTitle:
		return TokenTitle
	case model.KindHeading:
		switch {
		case u.Level <= 1:
			return TokenH1
		case u.Level == 2:
			return TokenH2
		default:
			return TokenH3
		}
	case model.KindListItem:
		return TokenList
	case model.KindTableCell:
		return TokenTable
	default:
		return TokenBody
	}
}

// StyleInfo is the inferred formatting behind one style token
type StyleInfo struct {
	// FontSize is the median font-size proxy of the token's units
	FontSize float64

	// Bold is true when the majority of the token's units carry the bold
	// estimate
	Bold bool

	// Alignment is the most common estimated alignment among the token's
	// units
	Alignment model.TextAlignment
}

// StyleCatalog maps style tokens to their inferred formatting. The catalog
// is advisory: a document generator resolves tokens against it, while the
// core never parses token strings.
type StyleCatalog map[string]StyleInfo

// BuildCatalog infers the style catalog from a document's units. Tokens
// absent from the document are absent from the catalog.
func BuildCatalog(units []model.StructuralUnit) StyleCatalog {
	type bucket struct {
		sizes      []float64
		bold       int
		total      int
		alignments map[model.TextAlignment]int
	}

	buckets := make(map[string]*bucket)
	for _, u := range units {
		token := TokenFor(u)
		b := buckets[token]
		if b == nil {
			b = &bucket{alignments: make(map[model.TextAlignment]int)}
			buckets[token] = b
		}
		b.total++
		if u.Style.FontSizeProxy > 0 {
			b.sizes = append(b.sizes, u.Style.FontSizeProxy)
		}
		if u.Style.BoldProxy {
			b.bold++
		}
		if u.Style.Alignment != model.AlignUnknown {
			b.alignments[u.Style.Alignment]++
		}
	}

	catalog := make(StyleCatalog, len(buckets))
	for token, b := range buckets {
		catalog[token] = StyleInfo{
			FontSize:  medianOf(b.sizes),
			Bold:      b.bold*2 > b.total,
			Alignment: dominantAlignment(b.alignments),
		}
	}
	return catalog
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func dominantAlignment(counts map[model.TextAlignment]int) model.TextAlignment {
	best := model.AlignUnknown
	bestCount := 0
	// Deterministic tie-break: left before center before right
	for _, a := range []model.TextAlignment{model.AlignLeft, model.AlignCenter, model.AlignRight} {
		if counts[a] > bestCount {
			best = a
			bestCount = counts[a]
		}
	}
	return best
}
