package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/jmylchreest/threadmatch/internal/colour"
)

func rgbPalette() Palette {
	return NewPalette("test", []Entry{
		{Code: "A", Name: "Red", Colour: colour.RGB{R: 255}},
		{Code: "B", Name: "Green", Colour: colour.RGB{G: 255}},
		{Code: "C", Name: "Blue", Colour: colour.RGB{B: 255}},
	})
}

type staticSource map[string]Palette

func (s staticSource) Palette(_ context.Context, name string) (Palette, error) {
	p, ok := s[name]
	if !ok {
		return Palette{}, fmt.Errorf("no dataset %q", name)
	}
	return p.Clone(), nil
}

func TestPaletteValidate(t *testing.T) {
	tests := []struct {
		name    string
		palette Palette
		wantErr bool
	}{
		{name: "valid", palette: rgbPalette()},
		{name: "no name", palette: NewPalette("", rgbPalette().Entries), wantErr: true},
		{name: "empty code", palette: NewPalette("x", []Entry{{Name: "Red"}}), wantErr: true},
		{name: "duplicate code", palette: NewPalette("x", []Entry{{Code: "1"}, {Code: "1"}}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.palette.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaletteCloneIsIndependent(t *testing.T) {
	p := rgbPalette()
	c := p.Clone()
	c.Entries[0].Name = "Changed"
	if p.Entries[0].Name != "Red" {
		t.Errorf("Clone shares entries with the original")
	}
}

func TestRankEuclidean(t *testing.T) {
	p := rgbPalette()
	target := colour.RGB{R: 250, G: 10, B: 10}

	ranked, err := Rank(p, target, colour.MetricEuclidean)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(ranked))
	}
	if ranked[0].Entry.Code != "A" || ranked[0].Distance != 225 {
		t.Errorf("First result = %s (%v), want A (225)", ranked[0].Entry.Code, ranked[0].Distance)
	}
	// Green and Blue are equidistant from the target.
	want := colour.Euclidean(target, colour.RGB{G: 255})
	for _, r := range ranked[1:] {
		if r.Distance != want {
			t.Errorf("%s distance = %v, want %v", r.Entry.Code, r.Distance, want)
		}
	}
	if ranked[1].Entry.Code != "B" || ranked[2].Entry.Code != "C" {
		t.Errorf("Ties should keep palette order, got %s, %s", ranked[1].Entry.Code, ranked[2].Entry.Code)
	}

	if p.Entries[0].Code != "A" || p.Entries[1].Code != "B" || p.Entries[2].Code != "C" {
		t.Error("Rank reordered the input palette")
	}
}

func TestRankSortedForAllMetrics(t *testing.T) {
	p := NewPalette("wide", []Entry{
		{Code: "1", Name: "Black", Colour: colour.RGB{}},
		{Code: "2", Name: "White", Colour: colour.RGB{R: 255, G: 255, B: 255}},
		{Code: "3", Name: "Orange", Colour: colour.RGB{R: 255, G: 140}},
		{Code: "4", Name: "Teal", Colour: colour.RGB{G: 128, B: 128}},
		{Code: "5", Name: "Pink", Colour: colour.RGB{R: 255, G: 192, B: 203}},
		{Code: "6", Name: "Olive", Colour: colour.RGB{R: 128, G: 128}},
	})
	target := colour.RGB{R: 200, G: 120, B: 40}

	for _, m := range colour.Metrics() {
		t.Run(m.String(), func(t *testing.T) {
			ranked, err := Rank(p, target, m)
			if err != nil {
				t.Fatalf("Rank() error = %v", err)
			}
			for i := 1; i < len(ranked); i++ {
				if ranked[i-1].Distance > ranked[i].Distance {
					t.Errorf("Results not sorted at %d: %v > %v", i, ranked[i-1].Distance, ranked[i].Distance)
				}
			}
		})
	}
}

func TestRankInvalidMetric(t *testing.T) {
	_, err := Rank(rgbPalette(), colour.RGB{}, colour.Metric(42))
	if !errors.Is(err, colour.ErrUnknownMetric) {
		t.Errorf("Rank() error = %v, want ErrUnknownMetric", err)
	}
}

func TestCompareDistanceNaNLast(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		a, b float64
		want int
	}{
		{a: 1, b: 2, want: -1},
		{a: 2, b: 1, want: 1},
		{a: 1, b: 1, want: 0},
		{a: nan, b: 1, want: 1},
		{a: 1, b: nan, want: -1},
		{a: nan, b: nan, want: 0},
	}

	for _, tt := range tests {
		if got := compareDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("compareDistance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBlendCatalogCount(t *testing.T) {
	for n := 0; n <= 6; n++ {
		entries := make([]Entry, n)
		for i := range entries {
			entries[i] = Entry{Code: fmt.Sprint(i), Name: fmt.Sprintf("Colour %d", n-i), Colour: colour.RGB{R: uint8(i * 40)}}
		}
		catalog := NewBlendCatalog(NewPalette("n", entries))

		if catalog.Len() != n*(n+1)/2 {
			t.Errorf("n=%d: Expected %d pairs, got %d", n, n*(n+1)/2, catalog.Len())
		}

		selfPairs := 0
		for _, pair := range catalog.Pairs {
			if pair.Lower.Name > pair.Upper.Name {
				t.Errorf("Pair not ordered by name: %q > %q", pair.Lower.Name, pair.Upper.Name)
			}
			if pair.IsSelf() {
				selfPairs++
				if pair.Blended != pair.Lower.Colour {
					t.Errorf("Self blend %s = %s, want %s", pair.Lower.Code, pair.Blended.Hex(), pair.Lower.Colour.Hex())
				}
			}
		}
		if selfPairs != n {
			t.Errorf("n=%d: Expected %d self pairs, got %d", n, n, selfPairs)
		}
	}
}

func TestBlendCatalogNameTieKeepsIndexOrder(t *testing.T) {
	catalog := NewBlendCatalog(NewPalette("ties", []Entry{
		{Code: "1", Name: "Same", Colour: colour.RGB{R: 10}},
		{Code: "2", Name: "Same", Colour: colour.RGB{R: 20}},
	}))

	// Pairs are (0,0), (0,1), (1,1).
	pair := catalog.Pairs[1]
	if pair.Lower.Code != "1" || pair.Upper.Code != "2" {
		t.Errorf("Expected lower=1 upper=2 on name tie, got %s, %s", pair.Lower.Code, pair.Upper.Code)
	}
	if pair.Blended != (colour.RGB{R: 15}) {
		t.Errorf("Blended = %s, want #0f0000", pair.Blended.Hex())
	}
}

func TestRankBlendsSelfPairFirst(t *testing.T) {
	ranked, err := RankBlends(rgbPalette(), colour.RGB{R: 255}, colour.MetricEuclidean)
	if err != nil {
		t.Fatalf("RankBlends() error = %v", err)
	}
	if len(ranked) != 6 {
		t.Fatalf("Expected 6 blends, got %d", len(ranked))
	}

	top := ranked[0]
	if top.Pair.Blended != (colour.RGB{R: 255}) || top.Distance != 0 || !top.Pair.IsSelf() || top.Pair.Lower.Code != "A" {
		t.Errorf("Top blend = %+v (%v), want Red self pair at distance 0", top.Pair, top.Distance)
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Distance > ranked[i].Distance {
			t.Errorf("Blends not sorted at %d", i)
		}
	}
}

func TestResolve(t *testing.T) {
	p := rgbPalette()

	tests := []struct {
		name   string
		input  Input
		want   colour.RGB
		wantOK bool
	}{
		{name: "hex", input: HexInput("#fa0a0a"), want: colour.RGB{R: 250, G: 10, B: 10}, wantOK: true},
		{name: "hex shorthand", input: HexInput("f00"), want: colour.RGB{R: 255}, wantOK: true},
		{name: "empty hex", input: HexInput(""), wantOK: false},
		{name: "invalid hex", input: HexInput("#zzz"), wantOK: false},
		{name: "rgb", input: RGBInput("250", "10", "10"), want: colour.RGB{R: 250, G: 10, B: 10}, wantOK: true},
		{name: "rgb with spaces", input: RGBInput(" 1", "2 ", " 3 "), want: colour.RGB{R: 1, G: 2, B: 3}, wantOK: true},
		{name: "rgb trailing text", input: RGBInput("12px", "0", "0"), want: colour.RGB{R: 12}, wantOK: true},
		{name: "rgb clamped", input: RGBInput("300", "-4", "255"), want: colour.RGB{R: 255, G: 0, B: 255}, wantOK: true},
		{name: "rgb empty channel", input: RGBInput("1", "", "3"), wantOK: false},
		{name: "rgb non-numeric", input: RGBInput("red", "0", "0"), wantOK: false},
		{name: "rgb sign only", input: RGBInput("-", "0", "0"), wantOK: false},
		{name: "code", input: CodeInput("B"), want: colour.RGB{G: 255}, wantOK: true},
		{name: "unknown code", input: CodeInput("Z"), wantOK: false},
		{name: "empty code", input: CodeInput(""), wantOK: false},
		{name: "code with spaces", input: CodeInput(" B "), wantOK: false},
		{name: "hex with spaces", input: HexInput(" #00ff00"), wantOK: false},
		{name: "colour", input: ColourInput(colour.RGB{R: 1}), want: colour.RGB{R: 1}, wantOK: true},
		{name: "unknown kind", input: Input{Kind: InputKind(99)}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.input, p)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFinderFindNearest(t *testing.T) {
	finder := NewFinder(staticSource{"test": rgbPalette()}, nil)

	result, ok, err := finder.FindNearest(context.Background(), Request{
		Dataset: "test",
		Metric:  colour.MetricEuclidean,
		Input:   HexInput("#fa0a0a"),
	})
	if err != nil || !ok {
		t.Fatalf("FindNearest() = %v, %v", ok, err)
	}
	if result.Mode != ModeDirect {
		t.Errorf("Mode = %s, want %s", result.Mode, ModeDirect)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(result.Rows))
	}
	first := result.Rows[0]
	if first.Code != "A" || first.Name != "Red" || first.Distance != 225 || len(first.Components) != 1 {
		t.Errorf("First row = %+v", first)
	}
}

func TestFinderLimit(t *testing.T) {
	entries := make([]Entry, 30)
	for i := range entries {
		entries[i] = Entry{Code: fmt.Sprint(i), Name: fmt.Sprintf("Grey %02d", i), Colour: colour.RGB{R: uint8(i * 8), G: uint8(i * 8), B: uint8(i * 8)}}
	}
	finder := NewFinder(staticSource{"greys": NewPalette("greys", entries)}, nil)

	result, ok, err := finder.FindNearest(context.Background(), Request{Dataset: "greys", Metric: colour.MetricLab, Input: HexInput("#000")})
	if err != nil || !ok {
		t.Fatalf("FindNearest() = %v, %v", ok, err)
	}
	if len(result.Rows) != DefaultLimit {
		t.Errorf("Expected %d rows, got %d", DefaultLimit, len(result.Rows))
	}

	result, _, _ = finder.FindNearestBlend(context.Background(), Request{Dataset: "greys", Metric: colour.MetricLab, Input: HexInput("#000"), Limit: 5})
	if len(result.Rows) != 5 {
		t.Errorf("Expected 5 rows, got %d", len(result.Rows))
	}
}

func TestFinderFindNearestBlend(t *testing.T) {
	finder := NewFinder(staticSource{"test": rgbPalette()}, nil)

	for i := 0; i < 2; i++ {
		result, ok, err := finder.FindNearestBlend(context.Background(), Request{
			Dataset: "test",
			Metric:  colour.MetricCIEDE2000,
			Input:   CodeInput("A"),
		})
		if err != nil || !ok {
			t.Fatalf("FindNearestBlend() = %v, %v", ok, err)
		}
		if result.Mode != ModeBlend || len(result.Rows) != 6 {
			t.Fatalf("Expected 6 blend rows, got %d (%s)", len(result.Rows), result.Mode)
		}
		top := result.Rows[0]
		if top.Colour != (colour.RGB{R: 255}) || top.Code != "A, A" || top.Name != "Red, Red" || top.Distance != 0 {
			t.Errorf("Top row = %+v", top)
		}
		if len(top.Components) != 2 {
			t.Errorf("Expected 2 components, got %d", len(top.Components))
		}
	}
}

func TestFinderBlendCatalogFollowsSource(t *testing.T) {
	source := staticSource{"test": rgbPalette()}
	finder := NewFinder(source, nil)
	req := Request{Dataset: "test", Metric: colour.MetricEuclidean, Input: HexInput("#ff0000"), Limit: 1}

	result, _, err := finder.FindNearestBlend(context.Background(), req)
	if err != nil {
		t.Fatalf("FindNearestBlend() error = %v", err)
	}
	if result.Rows[0].Code != "A, A" {
		t.Fatalf("Expected A, A first, got %q", result.Rows[0].Code)
	}

	// Same name and size, different contents.
	source["test"] = NewPalette("test", []Entry{
		{Code: "X", Name: "Crimson", Colour: colour.MustParseHex("#ff0000")},
		{Code: "B", Name: "Green", Colour: colour.RGB{G: 255}},
		{Code: "C", Name: "Blue", Colour: colour.RGB{B: 255}},
	})
	result, _, err = finder.FindNearestBlend(context.Background(), req)
	if err != nil {
		t.Fatalf("FindNearestBlend() error = %v", err)
	}
	if result.Rows[0].Code != "X, X" {
		t.Errorf("Expected blends from the replaced dataset, got %q", result.Rows[0].Code)
	}
}

func TestFinderNoTarget(t *testing.T) {
	finder := NewFinder(staticSource{"test": rgbPalette()}, nil)

	result, ok, err := finder.FindNearest(context.Background(), Request{Dataset: "test", Metric: colour.MetricLab, Input: HexInput("#nothex")})
	if err != nil {
		t.Fatalf("FindNearest() error = %v", err)
	}
	if ok || result != nil {
		t.Errorf("Expected no result for invalid input, got %+v", result)
	}
}

func TestFinderErrors(t *testing.T) {
	finder := NewFinder(staticSource{"test": rgbPalette()}, nil)

	if _, _, err := finder.FindNearest(context.Background(), Request{Dataset: "missing", Input: HexInput("#fff")}); err == nil {
		t.Error("Expected error for unknown dataset")
	}
	_, _, err := finder.FindNearestBlend(context.Background(), Request{Dataset: "test", Metric: colour.Metric(-1), Input: HexInput("#fff")})
	if !errors.Is(err, colour.ErrUnknownMetric) {
		t.Errorf("Expected ErrUnknownMetric, got %v", err)
	}
}
