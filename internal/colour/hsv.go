package colour

// HSV represents a colour in the HSV colour space.
// H is in degrees [0, 360), S and V are percentages [0, 100].
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// HSV converts the colour to hue, saturation and value.
// Achromatic colours (all channels equal) have zero hue and saturation.
func (rgb RGB) HSV() HSV {
	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	maxVal := max(r, g, b)
	minVal := min(r, g, b)
	delta := maxVal - minVal

	v := maxVal * 100
	if delta == 0 {
		return HSV{V: v}
	}

	// Hue as a fraction of a full turn.
	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta / 6
	case g:
		h = 1.0/3.0 + (b-r)/delta/6
	default:
		h = 2.0/3.0 + (r-g)/delta/6
	}
	if h < 0 {
		h++
	} else if h >= 1 {
		h--
	}

	return HSV{
		H: h * 360,
		S: delta / maxVal * 100,
		V: v,
	}
}
