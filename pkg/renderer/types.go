package renderer

import (
	"context"
)

// Renderer is the interface renderer plugins implement.
type Renderer interface {
	// Render formats a match result. The returned bytes are written to the host's output.
	Render(ctx context.Context, result ResultData) ([]byte, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}

// PluginInfo contains metadata about a renderer plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}

// ResultData is a match result as sent to renderers and written by the JSON output.
type ResultData struct {
	Dataset string    `json:"dataset"`
	Metric  string    `json:"metric"`
	Mode    string    `json:"mode"`
	Target  Colour    `json:"target"`
	Rows    []RowData `json:"rows"`
	Debug   bool      `json:"debug,omitempty"`
}

// RowData is one ranked row. Blend rows carry two components.
type RowData struct {
	Colour     Colour   `json:"colour"`
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Distance   float64  `json:"distance"`
	Components []Colour `json:"components,omitempty"`
}

// Colour is an RGB colour with its hex form.
type Colour struct {
	Hex string `json:"hex"`
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
}
