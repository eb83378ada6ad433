package match

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/threadmatch/internal/colour"
)

// DefaultLimit is the number of results returned when a request sets no limit.
const DefaultLimit = 20

// ErrNoTarget is returned by callers that need to report an input that did not resolve.
var ErrNoTarget = errors.New("input does not resolve to a colour")

// PaletteSource provides palettes by dataset name.
type PaletteSource interface {
	Palette(ctx context.Context, name string) (Palette, error)
}

// Mode distinguishes direct matches from blend matches.
type Mode string

const (
	// ModeDirect ranks single palette entries.
	ModeDirect Mode = "direct"
	// ModeBlend ranks pairwise blends of palette entries.
	ModeBlend Mode = "blend"
)

// Request describes a single match.
type Request struct {
	Dataset string
	Metric  colour.Metric
	Input   Input
	Limit   int
}

// Row is one ranked result. Direct rows have one component, blend rows two.
type Row struct {
	Colour     colour.RGB
	Code       string
	Name       string
	Distance   float64
	Components []colour.RGB
}

// Result is the outcome of a match request.
type Result struct {
	Dataset string
	Metric  colour.Metric
	Mode    Mode
	Target  colour.RGB
	Rows    []Row
}

// Finder resolves requests against a palette source. It is safe for concurrent use.
type Finder struct {
	source PaletteSource
	logger hclog.Logger

	mu       sync.Mutex
	catalogs map[string]cachedCatalog
}

// cachedCatalog remembers the entries a catalog was built from.
type cachedCatalog struct {
	entries []Entry
	catalog *BlendCatalog
}

// NewFinder creates a Finder. A nil logger discards log output.
func NewFinder(source PaletteSource, logger hclog.Logger) *Finder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Finder{
		source:   source,
		logger:   logger,
		catalogs: make(map[string]cachedCatalog),
	}
}

// FindNearest ranks the dataset's entries against the request's target.
// Returns false when the input does not resolve to a colour.
func (f *Finder) FindNearest(ctx context.Context, req Request) (*Result, bool, error) {
	palette, target, ok, err := f.prepare(ctx, req)
	if err != nil || !ok {
		return nil, ok, err
	}

	ranked, err := Rank(palette, target, req.Metric)
	if err != nil {
		return nil, false, err
	}
	f.logger.Debug("ranked palette", "dataset", palette.Name, "metric", req.Metric, "target", target.Hex(), "entries", len(ranked))

	ranked = ranked[:min(limitOf(req), len(ranked))]
	rows := make([]Row, len(ranked))
	for i, r := range ranked {
		rows[i] = Row{
			Colour:     r.Entry.Colour,
			Code:       r.Entry.Code,
			Name:       r.Entry.Name,
			Distance:   r.Distance,
			Components: []colour.RGB{r.Entry.Colour},
		}
	}

	return &Result{Dataset: palette.Name, Metric: req.Metric, Mode: ModeDirect, Target: target, Rows: rows}, true, nil
}

// FindNearestBlend ranks every pairwise blend of the dataset's entries against the target.
// Returns false when the input does not resolve to a colour.
func (f *Finder) FindNearestBlend(ctx context.Context, req Request) (*Result, bool, error) {
	palette, target, ok, err := f.prepare(ctx, req)
	if err != nil || !ok {
		return nil, ok, err
	}

	catalog := f.catalog(palette)
	ranked, err := catalog.Rank(target, req.Metric)
	if err != nil {
		return nil, false, err
	}
	f.logger.Debug("ranked blends", "dataset", palette.Name, "metric", req.Metric, "target", target.Hex(), "pairs", len(ranked))

	ranked = ranked[:min(limitOf(req), len(ranked))]
	rows := make([]Row, len(ranked))
	for i, r := range ranked {
		lower, upper := r.Pair.Lower, r.Pair.Upper
		rows[i] = Row{
			Colour:     r.Pair.Blended,
			Code:       strings.Join([]string{lower.Code, upper.Code}, ", "),
			Name:       strings.Join([]string{lower.Name, upper.Name}, ", "),
			Distance:   r.Distance,
			Components: []colour.RGB{lower.Colour, upper.Colour},
		}
	}

	return &Result{Dataset: palette.Name, Metric: req.Metric, Mode: ModeBlend, Target: target, Rows: rows}, true, nil
}

// prepare validates the metric, loads the palette and resolves the target.
func (f *Finder) prepare(ctx context.Context, req Request) (Palette, colour.RGB, bool, error) {
	if !req.Metric.Valid() {
		return Palette{}, colour.RGB{}, false, fmt.Errorf("%w: %d", colour.ErrUnknownMetric, int(req.Metric))
	}

	palette, err := f.source.Palette(ctx, req.Dataset)
	if err != nil {
		return Palette{}, colour.RGB{}, false, fmt.Errorf("failed to load dataset %q: %w", req.Dataset, err)
	}

	target, ok := Resolve(req.Input, palette)
	if !ok {
		f.logger.Debug("input did not resolve", "kind", req.Input.Kind.String(), "dataset", palette.Name)
		return Palette{}, colour.RGB{}, false, nil
	}
	return palette, target, true, nil
}

// catalog returns the cached blend catalog for a palette. The catalog is rebuilt
// when the source returns different entries under the same name.
func (f *Finder) catalog(p Palette) *BlendCatalog {
	f.mu.Lock()
	defer f.mu.Unlock()

	if cached, ok := f.catalogs[p.Name]; ok && slices.Equal(cached.entries, p.Entries) {
		return cached.catalog
	}
	c := NewBlendCatalog(p)
	f.catalogs[p.Name] = cachedCatalog{entries: slices.Clone(p.Entries), catalog: c}
	f.logger.Debug("built blend catalog", "dataset", p.Name, "pairs", c.Len())
	return c
}

func limitOf(req Request) int {
	if req.Limit <= 0 {
		return DefaultLimit
	}
	return req.Limit
}
