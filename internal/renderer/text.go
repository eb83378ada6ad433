package renderer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jmylchreest/threadmatch/internal/match"
)

// JSONRenderer writes results as indented JSON.
type JSONRenderer struct {
	Debug bool
}

// Render implements Renderer.
func (r *JSONRenderer) Render(w io.Writer, result *match.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToResultData(result, r.Debug))
}

// PlainRenderer writes one tab-separated line per row: hex, code and name,
// followed by the distance in debug mode.
type PlainRenderer struct {
	Debug bool
}

// Render implements Renderer.
func (r *PlainRenderer) Render(w io.Writer, result *match.Result) error {
	for _, row := range result.Rows {
		var err error
		if r.Debug {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", row.Colour.Hex(), row.Code, row.Name, row.Distance)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", row.Colour.Hex(), row.Code, row.Name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
