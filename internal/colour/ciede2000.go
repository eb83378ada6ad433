package colour

import "math"

const pow25To7 = 6103515625.0 // 25^7

// CIEDE2000 computes the CIE ΔE 2000 colour difference between two Lab colours
// with unit weighting factors (kL = kC = kH = 1).
// Follows Sharma, Wu and Dalal, "The CIEDE2000 Color-Difference Formula" (2005).
func CIEDE2000(lab1, lab2 Lab) float64 {
	c1 := math.Hypot(lab1.A, lab1.B)
	c2 := math.Hypot(lab2.A, lab2.B)
	cBar := (c1 + c2) / 2

	cBar7 := math.Pow(cBar, 7)
	g := 0.5 * (1 - math.Sqrt(cBar7/(cBar7+pow25To7)))

	a1 := (1 + g) * lab1.A
	a2 := (1 + g) * lab2.A

	c1p := math.Hypot(a1, lab1.B)
	c2p := math.Hypot(a2, lab2.B)

	h1p := hueAngle(lab1.B, a1)
	h2p := hueAngle(lab2.B, a2)

	dLp := lab2.L - lab1.L
	dCp := c2p - c1p

	var dhp float64
	if c1p*c2p != 0 {
		dhp = h2p - h1p
		switch {
		case dhp > 180:
			dhp -= 360
		case dhp < -180:
			dhp += 360
		}
	}
	dHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(radians(dhp/2))

	lBarP := (lab1.L + lab2.L) / 2
	cBarP := (c1p + c2p) / 2

	hBarP := h1p + h2p
	if c1p*c2p != 0 {
		switch {
		case math.Abs(h1p-h2p) <= 180:
			hBarP /= 2
		case h1p+h2p < 360:
			hBarP = (hBarP + 360) / 2
		default:
			hBarP = (hBarP - 360) / 2
		}
	}

	t := 1 -
		0.17*math.Cos(radians(hBarP-30)) +
		0.24*math.Cos(radians(2*hBarP)) +
		0.32*math.Cos(radians(3*hBarP+6)) -
		0.20*math.Cos(radians(4*hBarP-63))

	dTheta := 30 * math.Exp(-math.Pow((hBarP-275)/25, 2))
	cBarP7 := math.Pow(cBarP, 7)
	rc := 2 * math.Sqrt(cBarP7/(cBarP7+pow25To7))

	lBarP50 := (lBarP - 50) * (lBarP - 50)
	sl := 1 + 0.015*lBarP50/math.Sqrt(20+lBarP50)
	sc := 1 + 0.045*cBarP
	sh := 1 + 0.015*cBarP*t
	rt := -math.Sin(radians(2*dTheta)) * rc

	lTerm := dLp / sl
	cTerm := dCp / sc
	hTerm := dHp / sh

	return math.Sqrt(math.Max(0, lTerm*lTerm+cTerm*cTerm+hTerm*hTerm+rt*cTerm*hTerm))
}

// hueAngle returns atan2(b, a) in degrees within [0, 360).
func hueAngle(b, a float64) float64 {
	if b == 0 && a == 0 {
		return 0
	}
	h := math.Atan2(b, a) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
