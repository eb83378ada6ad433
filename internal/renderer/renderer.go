// Package renderer writes match results as tables, JSON, plain text or through an external plugin.
package renderer

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/threadmatch/internal/colour"
	"github.com/jmylchreest/threadmatch/internal/match"
	api "github.com/jmylchreest/threadmatch/pkg/renderer"
)

// Renderer writes a match result.
type Renderer interface {
	Render(w io.Writer, result *match.Result) error
}

// Options controls built-in renderers.
type Options struct {
	// Debug adds the distance column to tabular output.
	Debug bool

	// Colour draws swatches using terminal colours.
	Colour bool
}

// Built-in renderer names.
const (
	NameTable = "table"
	NameJSON  = "json"
	NamePlain = "plain"
)

// Names returns the built-in renderer names.
func Names() []string {
	return []string{NameTable, NameJSON, NamePlain}
}

// New returns the named built-in renderer.
func New(name string, opts Options) (Renderer, error) {
	switch strings.ToLower(name) {
	case NameTable, "":
		return &TableRenderer{Options: opts}, nil
	case NameJSON:
		return &JSONRenderer{Debug: opts.Debug}, nil
	case NamePlain:
		return &PlainRenderer{Debug: opts.Debug}, nil
	default:
		return nil, fmt.Errorf("unknown renderer %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
}

// IsValid reports whether name is a built-in renderer.
func IsValid(name string) bool {
	return slices.Contains(Names(), strings.ToLower(name))
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}

// ToResultData converts a match result into its transfer form.
func ToResultData(result *match.Result, debug bool) api.ResultData {
	data := api.ResultData{
		Dataset: result.Dataset,
		Metric:  result.Metric.String(),
		Mode:    string(result.Mode),
		Target:  toColour(result.Target),
		Rows:    make([]api.RowData, len(result.Rows)),
		Debug:   debug,
	}
	for i, row := range result.Rows {
		components := make([]api.Colour, len(row.Components))
		for j, c := range row.Components {
			components[j] = toColour(c)
		}
		data.Rows[i] = api.RowData{
			Colour:     toColour(row.Colour),
			Code:       row.Code,
			Name:       row.Name,
			Distance:   row.Distance,
			Components: components,
		}
	}
	return data
}

func toColour(c colour.RGB) api.Colour {
	return api.Colour{Hex: c.Hex(), R: c.R, G: c.G, B: c.B}
}
