package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/jmylchreest/threadmatch/internal/colour"
)

func TestMetricValue(t *testing.T) {
	tests := []struct {
		in      string
		want    colour.Metric
		wantErr bool
	}{
		{in: "ciede2000", want: colour.MetricCIEDE2000},
		{in: "deltae", want: colour.MetricCIEDE2000},
		{in: "3", want: colour.MetricEuclidean},
		{in: "LAB", want: colour.MetricLab},
		{in: "cmc", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m colour.Metric
			v := newMetricValue(&m)
			err := v.Set(tt.in)
			if tt.wantErr {
				if !errors.Is(err, colour.ErrUnknownMetric) {
					t.Errorf("Set(%q) error = %v, want ErrUnknownMetric", tt.in, err)
				}
				if v.set {
					t.Error("Expected failed Set to leave the value unset")
				}
				return
			}
			if err != nil {
				t.Fatalf("Set(%q) error = %v", tt.in, err)
			}
			if m != tt.want || v.String() != tt.want.String() {
				t.Errorf("Set(%q) = %v, want %v", tt.in, m, tt.want)
			}
		})
	}

	if (&metricValue{}).Type() != "metric" {
		t.Error("Expected flag type 'metric'")
	}
}

func TestMetricUsage(t *testing.T) {
	usage := metricUsage()
	for _, m := range colour.Metrics() {
		if !strings.Contains(usage, m.String()) {
			t.Errorf("Expected usage to mention %s: %q", m, usage)
		}
	}
}
