package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownMetric is returned when a metric id or name is not recognised.
var ErrUnknownMetric = errors.New("unknown metric")

// Metric selects a colour distance formula. Smaller distances are closer.
type Metric int

const (
	// MetricCIEDE2000 is the CIE ΔE 2000 perceptual difference over Lab.
	MetricCIEDE2000 Metric = iota
	// MetricCompuPhase is the red-mean weighted RGB distance from compuphase.com/cmetric.htm.
	MetricCompuPhase
	// MetricPerceptual is the squared luma-weighted RGB distance.
	MetricPerceptual
	// MetricEuclidean is the squared Euclidean RGB distance.
	MetricEuclidean
	// MetricLab is the squared Euclidean Lab distance (CIE76, unrooted).
	MetricLab
)

var metricNames = []string{
	MetricCIEDE2000:  "ciede2000",
	MetricCompuPhase: "compuphase",
	MetricPerceptual: "perceptual",
	MetricEuclidean:  "euclidean",
	MetricLab:        "lab",
}

// Metrics returns every supported metric in id order.
func Metrics() []Metric {
	return []Metric{MetricCIEDE2000, MetricCompuPhase, MetricPerceptual, MetricEuclidean, MetricLab}
}

// String returns the metric name.
func (m Metric) String() string {
	if !m.Valid() {
		return fmt.Sprintf("metric(%d)", int(m))
	}
	return metricNames[m]
}

// Valid reports whether m is one of the defined metrics.
func (m Metric) Valid() bool {
	return m >= MetricCIEDE2000 && m <= MetricLab
}

// ParseMetric parses a metric from its numeric id (0-4) or its name.
// "deltae" is accepted as an alias for ciede2000.
func ParseMetric(text string) (Metric, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if id, err := strconv.Atoi(s); err == nil {
		m := Metric(id)
		if !m.Valid() {
			return 0, fmt.Errorf("%w: id %d (valid ids: 0-%d)", ErrUnknownMetric, id, int(MetricLab))
		}
		return m, nil
	}

	if s == "deltae" {
		return MetricCIEDE2000, nil
	}
	for i, name := range metricNames {
		if s == name {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownMetric, text, strings.Join(metricNames, ", "))
}

// Distance computes the distance between two colours under this metric.
// Invalid metrics return NaN.
func (m Metric) Distance(a, b RGB) float64 {
	switch m {
	case MetricCIEDE2000:
		return CIEDE2000(a.Lab(), b.Lab())
	case MetricCompuPhase:
		return CompuPhase(a, b)
	case MetricPerceptual:
		return Perceptual(a, b)
	case MetricEuclidean:
		return Euclidean(a, b)
	case MetricLab:
		return LabDistance(a.Lab(), b.Lab())
	default:
		return math.NaN()
	}
}

// UsesLab reports whether the metric operates on Lab values.
func (m Metric) UsesLab() bool {
	return m == MetricCIEDE2000 || m == MetricLab
}

// LabDistance computes the distance between two precomputed Lab values.
// Only meaningful for metrics where UsesLab is true; others return NaN.
func (m Metric) LabDistance(a, b Lab) float64 {
	switch m {
	case MetricCIEDE2000:
		return CIEDE2000(a, b)
	case MetricLab:
		return LabDistance(a, b)
	default:
		return math.NaN()
	}
}

// CompuPhase computes the "redmean" weighted RGB distance.
// The red and blue terms are floor divided by 256 before summing.
func CompuPhase(a, b RGB) float64 {
	rmean := (float64(a.R) + float64(b.R)) / 2
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)

	rTerm := int64((512+rmean)*dr*dr) >> 8
	bTerm := int64((767-rmean)*db*db) >> 8
	return math.Sqrt(float64(rTerm) + 4*dg*dg + float64(bTerm))
}

// Perceptual computes the squared distance with each channel weighted by its luma contribution.
func Perceptual(a, b RGB) float64 {
	dr := (float64(a.R) - float64(b.R)) * 0.30
	dg := (float64(a.G) - float64(b.G)) * 0.59
	db := (float64(a.B) - float64(b.B)) * 0.11
	return dr*dr + dg*dg + db*db
}

// Euclidean computes the squared Euclidean distance in RGB space.
func Euclidean(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

// LabDistance computes the squared Euclidean distance in Lab space.
func LabDistance(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + da*da + db*db
}
