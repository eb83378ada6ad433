package match

import (
	"strconv"
	"strings"

	"github.com/jmylchreest/threadmatch/internal/colour"
)

// InputKind identifies how a target colour is specified.
type InputKind int

const (
	// InputHex is a hex colour string.
	InputHex InputKind = iota
	// InputRGB is three decimal channel strings.
	InputRGB
	// InputCode is the code of a palette entry.
	InputCode
	// InputColour is an already resolved colour.
	InputColour
)

// String returns the input kind name.
func (k InputKind) String() string {
	switch k {
	case InputHex:
		return "hex"
	case InputRGB:
		return "rgb"
	case InputCode:
		return "code"
	case InputColour:
		return "colour"
	default:
		return "unknown"
	}
}

// Input specifies a target colour. Only the field matching Kind is used.
type Input struct {
	Kind   InputKind
	Hex    string
	RGB    [3]string
	Code   string
	Colour colour.RGB
}

// HexInput returns an input for a hex colour string.
func HexInput(hex string) Input {
	return Input{Kind: InputHex, Hex: hex}
}

// RGBInput returns an input for three decimal channel strings.
func RGBInput(r, g, b string) Input {
	return Input{Kind: InputRGB, RGB: [3]string{r, g, b}}
}

// CodeInput returns an input naming a palette entry by code.
func CodeInput(code string) Input {
	return Input{Kind: InputCode, Code: code}
}

// ColourInput returns an input for a known colour.
func ColourInput(c colour.RGB) Input {
	return Input{Kind: InputColour, Colour: c}
}

// Resolve turns an input into a target colour, looking codes up in the palette.
// Hex and code text are matched as given. Returns false for empty fields, malformed hex, non-numeric channels and unknown codes.
func Resolve(in Input, p Palette) (colour.RGB, bool) {
	switch in.Kind {
	case InputHex:
		if in.Hex == "" {
			return colour.RGB{}, false
		}
		return colour.ParseHex(in.Hex)

	case InputRGB:
		var channels [3]uint8
		for i, text := range in.RGB {
			v, ok := parseChannel(text)
			if !ok {
				return colour.RGB{}, false
			}
			channels[i] = v
		}
		return colour.RGB{R: channels[0], G: channels[1], B: channels[2]}, true

	case InputCode:
		if in.Code == "" {
			return colour.RGB{}, false
		}
		e, ok := p.Lookup(in.Code)
		if !ok {
			return colour.RGB{}, false
		}
		return e.Colour, true

	case InputColour:
		return in.Colour, true

	default:
		return colour.RGB{}, false
	}
}

// parseChannel reads the leading decimal integer of text, ignoring surrounding
// whitespace and any trailing characters, and clamps it to [0, 255].
func parseChannel(text string) (uint8, bool) {
	s := strings.TrimSpace(text)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only overflow can fail here; saturate in the direction of the sign.
		if s[0] == '-' {
			return 0, true
		}
		return 255, true
	}
	return uint8(max(0, min(255, v))), true
}
