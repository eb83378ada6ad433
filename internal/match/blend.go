package match

import (
	"slices"

	"github.com/jmylchreest/threadmatch/internal/colour"
)

// BlendPair is the blend of two palette entries, ordered by name.
// Self pairs blend an entry with itself.
type BlendPair struct {
	Lower   Entry
	Upper   Entry
	Blended colour.RGB
}

// IsSelf reports whether the pair blends an entry with itself.
func (b BlendPair) IsSelf() bool {
	return b.Lower.Code == b.Upper.Code
}

// RankedBlend is a blend pair paired with its distance from the target.
type RankedBlend struct {
	Pair     BlendPair
	Distance float64
}

// BlendCatalog holds every unordered pair of a palette's entries, self pairs included.
type BlendCatalog struct {
	Palette string
	Pairs   []BlendPair
}

// NewBlendCatalog enumerates the pairs (i, j) with i <= j over the palette,
// giving n(n+1)/2 pairs for n entries.
func NewBlendCatalog(p Palette) *BlendCatalog {
	n := len(p.Entries)
	pairs := make([]BlendPair, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a, b := p.Entries[i], p.Entries[j]
			if b.Name < a.Name {
				a, b = b, a
			}
			pairs = append(pairs, BlendPair{
				Lower:   a,
				Upper:   b,
				Blended: colour.Blend(a.Colour, b.Colour),
			})
		}
	}
	return &BlendCatalog{Palette: p.Name, Pairs: pairs}
}

// Len returns the number of pairs in the catalog.
func (c *BlendCatalog) Len() int {
	return len(c.Pairs)
}

// Rank scores every blend against target and returns them closest first.
// Ties keep catalog order and NaN distances sort last.
func (c *BlendCatalog) Rank(target colour.RGB, m colour.Metric) ([]RankedBlend, error) {
	s, err := newScorer(target, m)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedBlend, len(c.Pairs))
	for i, pair := range c.Pairs {
		ranked[i] = RankedBlend{Pair: pair, Distance: s.score(pair.Blended)}
	}
	slices.SortStableFunc(ranked, func(a, b RankedBlend) int {
		return compareDistance(a.Distance, b.Distance)
	})
	return ranked, nil
}

// RankBlends builds the blend catalog for the palette and ranks it against target.
func RankBlends(p Palette, target colour.RGB, m colour.Metric) ([]RankedBlend, error) {
	return NewBlendCatalog(p).Rank(target, m)
}
