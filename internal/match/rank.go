package match

import (
	"fmt"
	"math"
	"slices"

	"github.com/jmylchreest/threadmatch/internal/colour"
)

// Ranked is a palette entry paired with its distance from the target.
type Ranked struct {
	Entry    Entry
	Distance float64
}

// Rank scores every entry in the palette against target and returns them closest first.
// The palette is not modified. Ties keep palette order and NaN distances sort last.
func Rank(p Palette, target colour.RGB, m colour.Metric) ([]Ranked, error) {
	s, err := newScorer(target, m)
	if err != nil {
		return nil, err
	}

	ranked := make([]Ranked, len(p.Entries))
	for i, e := range p.Entries {
		ranked[i] = Ranked{Entry: e, Distance: s.score(e.Colour)}
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return compareDistance(a.Distance, b.Distance)
	})
	return ranked, nil
}

// scorer measures distances from a fixed target, converting the target to Lab once.
type scorer struct {
	metric    colour.Metric
	target    colour.RGB
	targetLab colour.Lab
}

func newScorer(target colour.RGB, m colour.Metric) (scorer, error) {
	if !m.Valid() {
		return scorer{}, fmt.Errorf("%w: %d", colour.ErrUnknownMetric, int(m))
	}
	s := scorer{metric: m, target: target}
	if m.UsesLab() {
		s.targetLab = target.Lab()
	}
	return s, nil
}

func (s scorer) score(c colour.RGB) float64 {
	if s.metric.UsesLab() {
		return s.metric.LabDistance(s.targetLab, c.Lab())
	}
	return s.metric.Distance(s.target, c)
}

// compareDistance orders distances ascending with NaN after every number.
func compareDistance(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
