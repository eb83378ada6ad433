package colour

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestRGBLab(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want Lab
	}{
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: Lab{L: 100, A: 0, B: 0}},
		{name: "black", rgb: RGB{}, want: Lab{L: 0, A: 0, B: 0}},
		{name: "red", rgb: RGB{R: 255}, want: Lab{L: 53.2408, A: 80.0925, B: 67.2032}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rgb.Lab()
			if math.Abs(got.L-tt.want.L) > 1e-2 || math.Abs(got.A-tt.want.A) > 1e-2 || math.Abs(got.B-tt.want.B) > 1e-2 {
				t.Errorf("Lab() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTextColour(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want TextColour
	}{
		{name: "white background", rgb: RGB{R: 255, G: 255, B: 255}, want: TextBlack},
		{name: "black background", rgb: RGB{}, want: TextWhite},
		{name: "red background", rgb: RGB{R: 255}, want: TextBlack},
		{name: "navy background", rgb: RGB{B: 128}, want: TextWhite},
		{name: "grey just below L50", rgb: RGB{R: 118, G: 118, B: 118}, want: TextWhite},
		{name: "grey just above L50", rgb: RGB{R: 119, G: 119, B: 119}, want: TextBlack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.TextColour(); got != tt.want {
				t.Errorf("TextColour() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBHSV(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSV
	}{
		{name: "red", rgb: RGB{R: 255}, want: HSV{H: 0, S: 100, V: 100}},
		{name: "green", rgb: RGB{G: 255}, want: HSV{H: 120, S: 100, V: 100}},
		{name: "blue", rgb: RGB{B: 255}, want: HSV{H: 240, S: 100, V: 100}},
		{name: "yellow", rgb: RGB{R: 255, G: 255}, want: HSV{H: 60, S: 100, V: 100}},
		{name: "magenta", rgb: RGB{R: 255, B: 255}, want: HSV{H: 300, S: 100, V: 100}},
		{name: "black", rgb: RGB{}, want: HSV{}},
		{name: "grey", rgb: RGB{R: 51, G: 51, B: 51}, want: HSV{H: 0, S: 0, V: 20}},
		{name: "half saturated", rgb: RGB{R: 255, G: 128, B: 128}, want: HSV{H: 0, S: 49.8039, V: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rgb.HSV()
			if math.Abs(got.H-tt.want.H) > 1e-3 || math.Abs(got.S-tt.want.S) > 1e-3 || math.Abs(got.V-tt.want.V) > 1e-3 {
				t.Errorf("HSV() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestRGBHSVMatchesColorful cross-checks the conversion against go-colorful.
func TestRGBHSVMatchesColorful(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 51 {
				rgb := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got := rgb.HSV()

				h, s, v := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hsv()
				if math.Abs(got.H-h) > 1e-9 || math.Abs(got.S/100-s) > 1e-9 || math.Abs(got.V/100-v) > 1e-9 {
					t.Fatalf("HSV(%s) = %+v, colorful = (%v, %v, %v)", rgb.Hex(), got, h, s, v)
				}
				if got.H < 0 || got.H >= 360 {
					t.Fatalf("HSV(%s) hue %v out of range", rgb.Hex(), got.H)
				}
			}
		}
	}
}
