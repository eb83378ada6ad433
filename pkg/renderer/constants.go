// Package renderer provides the public API for threadmatch renderer plugins.
// External renderers import this package and call Serve from main.
package renderer

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current renderer API version.
	// Format: MAJOR.MINOR.PATCH.
	ProtocolVersion = "0.1.0"

	// PluginName is the name under which the renderer is dispensed.
	PluginName = "renderer"
)

// Handshake is the handshake configuration for the go-plugin protocol.
// A renderer built against a different major protocol version will not connect.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0,
	MagicCookieKey:   "THREADMATCH_RENDERER",
	MagicCookieValue: "threadmatch_match_result",
}

// PluginMap returns the plugin set served to, and dispensed from, a renderer process.
func PluginMap(impl Renderer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &RendererRPC{Impl: impl},
	}
}

// Serve runs a renderer plugin. It blocks until the host disconnects.
func Serve(impl Renderer) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins:         PluginMap(impl),
	})
}
