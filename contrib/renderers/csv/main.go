// csv - CSV renderer plugin for threadmatch
//
// Writes match results as CSV with a header row, one row per match.
// Uses the go-plugin RPC protocol.
//
// Build:
//   go build -o threadmatch-csv ./contrib/renderers/csv
//
// Usage:
//   threadmatch match "#fa0a0a" --renderer ./threadmatch-csv
//   THREADMATCH_RENDERER=./threadmatch-csv threadmatch blend --code 321
//
// License: MIT

package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/jmylchreest/threadmatch/pkg/renderer"
)

// CSVRenderer implements renderer.Renderer.
type CSVRenderer struct{}

// Render writes the result rows as CSV.
func (r *CSVRenderer) Render(_ context.Context, result renderer.ResultData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"dataset", "mode", "target", "code", "name", "hex"}
	if result.Debug {
		header = append(header, "distance")
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range result.Rows {
		record := []string{result.Dataset, result.Mode, result.Target.Hex, row.Code, row.Name, row.Colour.Hex}
		if result.Debug {
			record = append(record, strconv.FormatFloat(row.Distance, 'f', 2, 64))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// GetMetadata returns plugin metadata.
func (r *CSVRenderer) GetMetadata() renderer.PluginInfo {
	return renderer.PluginInfo{
		Name:            "csv",
		Version:         "0.1.0",
		ProtocolVersion: renderer.ProtocolVersion,
		Description:     "Render match results as CSV",
	}
}

func main() {
	renderer.Serve(&CSVRenderer{})
}
