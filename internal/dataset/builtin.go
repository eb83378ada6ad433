package dataset

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jmylchreest/threadmatch/internal/match"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// DefaultDataset is the dataset used when none is configured.
const DefaultDataset = "dmc"

type builtinSource struct {
	fsys fs.FS
}

// Builtin returns the source of datasets compiled into the binary.
func Builtin() Source {
	return builtinSource{fsys: builtinFS}
}

func (s builtinSource) String() string {
	return "builtin"
}

func (s builtinSource) Load(_ context.Context) ([]match.Palette, error) {
	files, err := fs.Glob(s.fsys, "builtin/*.json")
	if err != nil {
		return nil, err
	}

	palettes := make([]match.Palette, 0, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(s.fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded dataset %s: %w", file, err)
		}
		p, err := Decode(data, FormatJSON, strings.TrimSuffix(path.Base(file), ".json"))
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, p)
	}
	return palettes, nil
}
