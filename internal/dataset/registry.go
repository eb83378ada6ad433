// Package dataset loads thread colour palettes from embedded, file, remote and database sources.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/threadmatch/internal/match"
)

// ErrUnknownDataset is returned when a dataset name is not registered.
var ErrUnknownDataset = errors.New("unknown dataset")

// Source loads one or more palettes.
type Source interface {
	// Load returns the palettes provided by the source.
	Load(ctx context.Context) ([]match.Palette, error)

	// String describes where the palettes come from.
	String() string
}

// Info describes a registered dataset.
type Info struct {
	Name    string `json:"name"`
	Entries int    `json:"entries"`
	Origin  string `json:"origin"`
}

// Registry holds palettes by dataset name. It is safe for concurrent use.
type Registry struct {
	logger hclog.Logger

	mu       sync.RWMutex
	palettes map[string]match.Palette
	origins  map[string]string
}

// NewRegistry creates an empty registry. A nil logger discards log output.
func NewRegistry(logger hclog.Logger) *Registry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Registry{
		logger:   logger,
		palettes: make(map[string]match.Palette),
		origins:  make(map[string]string),
	}
}

// Add loads every palette from a source and registers it.
// A palette whose name is already registered replaces the earlier one.
func (r *Registry) Add(ctx context.Context, src Source) error {
	palettes, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", src, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range palettes {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid dataset from %s: %w", src, err)
		}
		if prev, ok := r.origins[p.Name]; ok {
			r.logger.Debug("dataset overridden", "dataset", p.Name, "previous", prev, "origin", src.String())
		}
		r.palettes[p.Name] = p.Clone()
		r.origins[p.Name] = src.String()
		r.logger.Debug("registered dataset", "dataset", p.Name, "entries", p.Len(), "origin", src.String())
	}
	return nil
}

// Palette returns a copy of the named dataset.
func (r *Registry) Palette(_ context.Context, name string) (match.Palette, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.palettes[name]
	if !ok {
		return match.Palette{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return p.Clone(), nil
}

// Names returns the registered dataset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.palettes))
	for name := range r.palettes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// List describes every registered dataset, sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.palettes))
	for name, p := range r.palettes {
		infos = append(infos, Info{Name: name, Entries: p.Len(), Origin: r.origins[name]})
	}
	slices.SortFunc(infos, func(a, b Info) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return infos
}
