package colour

import "math"

// D65 reference white, Y is left unscaled.
const (
	whiteX = 0.95047
	whiteZ = 1.08883
)

// Lab represents a colour in the CIE 1976 L*a*b* colour space.
// Lab values are always derived from an RGB colour.
type Lab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Lab converts the colour to CIE L*a*b* using sRGB companding and the D65 white point.
// See http://www.brucelindbloom.com/index.html?Eqn_RGB_XYZ_Matrix.html.
func (rgb RGB) Lab() Lab {
	r := linearise(float64(rgb.R) / 255)
	g := linearise(float64(rgb.G) / 255)
	b := linearise(float64(rgb.B) / 255)

	x := (r*0.4124564 + g*0.3575761 + b*0.1804375) / whiteX
	y := r*0.2126729 + g*0.7151522 + b*0.0721750
	z := (r*0.0193339 + g*0.1191920 + b*0.9503041) / whiteZ

	x = labCompand(x)
	y = labCompand(y)
	z = labCompand(z)

	return Lab{
		L: 116*y - 16,
		A: 500 * (x - y),
		B: 200 * (y - z),
	}
}

// linearise removes the sRGB gamma from a channel in [0, 1].
func linearise(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

func labCompand(v float64) float64 {
	if v > 0.008856 {
		return math.Cbrt(v)
	}
	return 7.787*v + 16.0/116.0
}

// TextColour is the foreground colour that stays legible on a given background.
type TextColour string

const (
	// TextWhite is used on dark backgrounds.
	TextWhite TextColour = "white"
	// TextBlack is used on light backgrounds.
	TextBlack TextColour = "black"
)

// RGB returns the colour value of the text colour.
func (t TextColour) RGB() RGB {
	if t == TextWhite {
		return RGB{R: 255, G: 255, B: 255}
	}
	return RGB{}
}

// TextColour picks white or black text for use on this colour as a background.
// Colours with a Lab lightness below 50 get white text.
func (rgb RGB) TextColour() TextColour {
	if rgb.Lab().L < 50 {
		return TextWhite
	}
	return TextBlack
}
