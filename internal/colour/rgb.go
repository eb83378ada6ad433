// Package colour provides colour values, colour-space conversions and distance metrics.
package colour

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGB represents a colour with 8 bits per channel.
type RGB struct {
	R uint8 `json:"r" yaml:"r" toml:"r"`
	G uint8 `json:"g" yaml:"g" toml:"g"`
	B uint8 `json:"b" yaml:"b" toml:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%06x", int(rgb.R)<<16|int(rgb.G)<<8|int(rgb.B))
}

// RGBA implements color.Color so an RGB can be used with the image packages.
func (rgb RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}.RGBA()
}

// ToRGB converts a color.Color to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	if rgb, ok := c.(RGB); ok {
		return rgb
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255].
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses a hex colour such as "#1a2b3c", "1A2B3C" or the shorthand "#abc".
// Each channel is one or two hex digits; single digits are doubled ("f" becomes 0xff).
// Returns false if the text is not a valid hex colour.
func ParseHex(text string) (RGB, bool) {
	digits := strings.TrimPrefix(text, "#")
	if len(digits) < 3 || len(digits) > 6 {
		return RGB{}, false
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return RGB{}, false
		}
	}

	// Channels are matched greedily from the left, two digits where possible,
	// leaving at least one digit for each remaining channel.
	var channels [3]uint8
	rest := digits
	for i := range channels {
		remaining := len(channels) - i - 1
		width := 2
		if len(rest)-width < remaining {
			width = 1
		}
		if i == len(channels)-1 {
			width = len(rest)
		}

		part := rest[:width]
		if width == 1 {
			part += part
		}
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return RGB{}, false
		}
		channels[i] = uint8(v)
		rest = rest[width:]
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, true
}

// MustParseHex is like ParseHex but panics on invalid input.
// Intended for colour literals in tables and tests.
func MustParseHex(text string) RGB {
	rgb, ok := ParseHex(text)
	if !ok {
		panic(fmt.Sprintf("colour: invalid hex colour %q", text))
	}
	return rgb
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Blend returns the per-channel mean of two colours, rounded half up.
func Blend(a, b RGB) RGB {
	return RGB{
		R: blendChannel(a.R, b.R),
		G: blendChannel(a.G, b.G),
		B: blendChannel(a.B, b.B),
	}
}

func blendChannel(a, b uint8) uint8 {
	return uint8((int(a) + int(b) + 1) / 2)
}
