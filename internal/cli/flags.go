package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/threadmatch/internal/colour"
)

var _ pflag.Value = (*metricValue)(nil)

// metricValue is a pflag.Value accepting metric names or ids.
type metricValue struct {
	metric *colour.Metric
	set    bool
}

func newMetricValue(m *colour.Metric) *metricValue {
	return &metricValue{metric: m}
}

func (v *metricValue) String() string {
	if v.metric == nil {
		return ""
	}
	return v.metric.String()
}

func (v *metricValue) Set(s string) error {
	m, err := colour.ParseMetric(s)
	if err != nil {
		return err
	}
	*v.metric = m
	v.set = true
	return nil
}

func (v *metricValue) Type() string {
	return "metric"
}

// metricUsage lists the accepted metric names and ids.
func metricUsage() string {
	names := make([]string, 0, len(colour.Metrics()))
	for _, m := range colour.Metrics() {
		names = append(names, fmt.Sprintf("%s (%d)", m, int(m)))
	}
	return "distance metric: " + strings.Join(names, ", ")
}
