// Package compression decompresses single compressed dataset files.
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/threadmatch/internal/security"
)

// DefaultMaxSize is the largest decompressed payload accepted by Decompress.
const DefaultMaxSize = 16 * 1024 * 1024

// Format identifies a compression format.
type Format string

const (
	// FormatNone means the data is not compressed.
	FormatNone Format = ""
	// FormatGzip is gzip (.gz).
	FormatGzip Format = "gz"
	// FormatXz is xz (.xz).
	FormatXz Format = "xz"
	// FormatBzip2 is bzip2 (.bz2).
	FormatBzip2 Format = "bz2"
)

// DetectFormat returns the compression format implied by a file name's extension.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".xz":
		return FormatXz
	case ".bz2":
		return FormatBzip2
	default:
		return FormatNone
	}
}

// Decompress decompresses data according to the extension of name.
// It returns the decompressed bytes and the name with the compression extension removed.
// Uncompressed data is returned unchanged. Output larger than maxSize is rejected
// in both cases;
// a maxSize of zero uses DefaultMaxSize.
func Decompress(data []byte, name string, maxSize int64) ([]byte, string, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	format := DetectFormat(name)
	if format == FormatNone {
		if int64(len(data)) > maxSize {
			return nil, "", fmt.Errorf("%s: %w", filepath.Base(name), security.ErrSizeLimit)
		}
		return data, name, nil
	}

	var r io.Reader
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case FormatXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case FormatBzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	}

	out, err := io.ReadAll(security.NewLimitedReader(r, maxSize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress %s: %w", filepath.Base(name), err)
	}

	return out, strings.TrimSuffix(name, filepath.Ext(name)), nil
}
