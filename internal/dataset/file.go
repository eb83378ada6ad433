package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jmylchreest/threadmatch/internal/compression"
	"github.com/jmylchreest/threadmatch/internal/match"
	"github.com/jmylchreest/threadmatch/internal/security"
)

// MaxFileSize bounds the size of a dataset file, both as read and after decompression.
const MaxFileSize = 16 * 1024 * 1024

// FileSource loads a single dataset file. The format is taken from the extension
// after removing any .gz, .xz or .bz2 suffix.
type FileSource struct {
	Path string
	// MaxSize overrides MaxFileSize when positive.
	MaxSize int64
}

// NewFileSource creates a source for a dataset file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) String() string {
	return s.Path
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) ([]match.Palette, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	limit := s.MaxSize
	if limit <= 0 {
		limit = MaxFileSize
	}

	f, err := os.Open(s.Path) // #nosec G304 - User-specified dataset path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(security.NewLimitedReader(f, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file %s: %w", filepath.Base(s.Path), err)
	}

	p, err := decodeNamed(raw, s.Path, limit)
	if err != nil {
		return nil, err
	}
	return []match.Palette{p}, nil
}

// DirSource loads every dataset file in a directory. Subdirectories are not scanned.
type DirSource struct {
	Dir string
}

// NewDirSource creates a source for a dataset directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) String() string {
	return s.Dir
}

// Load decodes every supported file in the directory in name order.
func (s *DirSource) Load(ctx context.Context) ([]match.Palette, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsDatasetFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(s.Dir, entry.Name()))
	}
	slices.Sort(files)

	palettes := make([]match.Palette, 0, len(files))
	for _, file := range files {
		loaded, err := NewFileSource(file).Load(ctx)
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, loaded...)
	}
	return palettes, nil
}

// IsDatasetFile reports whether a file name has a supported dataset extension,
// optionally followed by a compression extension.
func IsDatasetFile(name string) bool {
	if compression.DetectFormat(name) != compression.FormatNone {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	_, err := FormatFromPath(name)
	return err == nil
}

// decodeNamed decompresses and decodes data named by a path or URL path.
// The dataset name defaults to the base name without extensions.
func decodeNamed(raw []byte, name string, maxSize int64) (match.Palette, error) {
	data, inner, err := compression.Decompress(raw, name, maxSize)
	if err != nil {
		return match.Palette{}, err
	}

	format, err := FormatFromPath(inner)
	if err != nil {
		return match.Palette{}, err
	}

	base := filepath.Base(inner)
	p, err := Decode(data, format, strings.TrimSuffix(base, filepath.Ext(base)))
	if err != nil {
		return match.Palette{}, fmt.Errorf("%s: %w", filepath.Base(name), err)
	}
	return p, nil
}

// SourceFor returns the source for a dataset location: an HTTPS URL, a directory or a file.
func SourceFor(location string) (Source, error) {
	if IsURL(location) {
		return NewRemoteSource(location), nil
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("failed to access dataset location: %w", err)
	}
	if info.IsDir() {
		return NewDirSource(location), nil
	}
	return NewFileSource(location), nil
}
