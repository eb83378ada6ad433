package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"testing"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/threadmatch/internal/security"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func xzBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{name: "dmc.json", want: FormatNone},
		{name: "dmc.json.gz", want: FormatGzip},
		{name: "dmc.yaml.XZ", want: FormatXz},
		{name: "dmc.toml.bz2", want: FormatBzip2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.name); got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestDecompress(t *testing.T) {
	payload := []byte(`{"name": "test", "colours": []}`)

	tests := []struct {
		name     string
		data     []byte
		file     string
		wantName string
	}{
		{name: "plain", data: payload, file: "test.json", wantName: "test.json"},
		{name: "gzip", data: gzipBytes(t, payload), file: "test.json.gz", wantName: "test.json"},
		{name: "xz", data: xzBytes(t, payload), file: "dir/test.yaml.xz", wantName: "dir/test.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, name, err := Decompress(tt.data, tt.file, 0)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("Decompress() = %q, want %q", got, payload)
			}
			if name != tt.wantName {
				t.Errorf("Decompress() name = %q, want %q", name, tt.wantName)
			}
		})
	}
}

func TestDecompressLimits(t *testing.T) {
	big := gzipBytes(t, bytes.Repeat([]byte("a"), 4096))
	if _, _, err := Decompress(bytes.Repeat([]byte("a"), 2048), "plain.json", 1024); !errors.Is(err, security.ErrSizeLimit) {
		t.Errorf("Expected uncompressed data over the limit to fail with ErrSizeLimit, got %v", err)
	}
	if _, _, err := Decompress(big, "big.json.gz", 1024); err == nil {
		t.Error("Expected error when decompressed size exceeds the limit")
	}

	if _, _, err := Decompress([]byte("not gzip"), "bad.json.gz", 0); err == nil {
		t.Error("Expected error for corrupt gzip data")
	}
}
