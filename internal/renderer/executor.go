package renderer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/threadmatch/internal/match"
	api "github.com/jmylchreest/threadmatch/pkg/renderer"
)

// Executor renders results through an external renderer plugin.
// The plugin process is started on first use and kept until Close.
type Executor struct {
	path   string
	debug  bool
	logger hclog.Logger

	mu       sync.Mutex
	client   *plugin.Client
	remote   api.Renderer
	dispense func() (api.Renderer, error)
}

// NewExecutor creates an executor for the plugin at path. A nil logger discards plugin logs.
func NewExecutor(path string, logger hclog.Logger, debug bool) (*Executor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("renderer plugin not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("renderer plugin path is a directory: %s", path)
	}
	if info.Mode()&0o111 == 0 {
		return nil, fmt.Errorf("renderer plugin is not executable: %s", path)
	}

	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	e := &Executor{path: path, debug: debug, logger: logger.Named("renderer")}
	e.dispense = e.start
	return e, nil
}

// start launches the plugin process and dispenses its renderer.
func (e *Executor) start() (api.Renderer, error) {
	e.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  api.Handshake,
		Plugins:          api.PluginMap(nil),
		Cmd:              exec.Command(e.path), // #nosec G204 - User-configured renderer plugin path
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           e.logger,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(api.PluginName)
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("failed to dispense renderer: %w", err)
	}

	remote, ok := raw.(api.Renderer)
	if !ok {
		e.client.Kill()
		e.client = nil
		return nil, fmt.Errorf("plugin returned unexpected type %T", raw)
	}
	return remote, nil
}

func (e *Executor) renderer() (api.Renderer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.remote != nil {
		return e.remote, nil
	}
	remote, err := e.dispense()
	if err != nil {
		return nil, err
	}
	info := remote.GetMetadata()
	if err := api.CheckCompatible(info.ProtocolVersion); err != nil {
		e.stop()
		return nil, fmt.Errorf("renderer plugin %s: %w", e.path, err)
	}
	e.logger.Debug("renderer plugin started", "path", e.path, "plugin", info.Name, "version", info.Version)
	e.remote = remote
	return remote, nil
}

// Metadata returns the plugin's metadata, starting it if needed.
func (e *Executor) Metadata() (api.PluginInfo, error) {
	remote, err := e.renderer()
	if err != nil {
		return api.PluginInfo{}, err
	}
	return remote.GetMetadata(), nil
}

// Render implements Renderer.
func (e *Executor) Render(w io.Writer, result *match.Result) error {
	remote, err := e.renderer()
	if err != nil {
		return err
	}

	out, err := remote.Render(context.Background(), ToResultData(result, e.debug))
	if err != nil {
		return fmt.Errorf("renderer plugin failed: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// Close stops the plugin process.
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stop()
}

func (e *Executor) stop() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
	}
	e.remote = nil
}
