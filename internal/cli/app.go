package cli

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/threadmatch/internal/config"
	"github.com/jmylchreest/threadmatch/internal/dataset"
	"github.com/jmylchreest/threadmatch/internal/util/datacache"
)

// app holds state shared by every command of one invocation.
type app struct {
	verbose      bool
	quiet        bool
	envFile      string
	datasetName  string
	datasetPaths []string
	databaseURL  string
	refresh      bool

	config   config.Config
	logger   hclog.Logger
	registry *dataset.Registry
	closers  []func() error
}

// init resolves configuration and sets up logging. Flags override the environment.
func (a *app) init(cmd *cobra.Command) error {
	flags := cmd.Flags()
	builder := config.NewBuilder()
	if flags.Changed("env-file") {
		builder.WithDotEnvRequired(a.envFile)
	} else {
		builder.WithDotEnv(a.envFile)
	}
	cfg, err := builder.WithEnvConfig().Build()
	if err != nil {
		return err
	}

	if flags.Changed("dataset") {
		cfg.Dataset = a.datasetName
	}
	if flags.Changed("dataset-path") {
		cfg.DatasetLocations = append(cfg.DatasetLocations, a.datasetPaths...)
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = a.databaseURL
	}
	a.config = cfg
	a.logger = newLogger(cmd, a.verbose, a.quiet)
	return nil
}

func newLogger(cmd *cobra.Command, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Off
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "threadmatch",
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})
}

// datasets builds the dataset registry on first use: built-ins first, then each
// configured location, then Postgres. Later sources override earlier ones by name.
func (a *app) datasets(ctx context.Context) (*dataset.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}

	reg := dataset.NewRegistry(a.logger.Named("dataset"))
	if err := reg.Add(ctx, dataset.Builtin()); err != nil {
		return nil, err
	}

	for _, location := range a.config.DatasetLocations {
		src, err := dataset.SourceFor(location)
		if err != nil {
			return nil, err
		}
		if remote, ok := src.(*dataset.RemoteSource); ok {
			remote.Cache = a.cache()
		}
		if err := reg.Add(ctx, src); err != nil {
			return nil, err
		}
	}

	if a.config.DatabaseURL != "" {
		db, err := dataset.OpenPostgres(ctx, a.config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := reg.Add(ctx, dataset.NewPostgresSource(db)); err != nil {
			return nil, err
		}
	}

	a.registry = reg
	return reg, nil
}

// cache returns the remote dataset cache, or nil when no cache directory is available.
func (a *app) cache() *datacache.Cache {
	c, err := datacache.New(a.config.CacheDir)
	if err != nil {
		a.logger.Debug("remote dataset cache disabled", "error", err)
		return nil
	}
	c.Refresh = a.refresh
	return c
}

// close releases resources opened by datasets.
func (a *app) close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil && a.logger != nil {
			a.logger.Warn("failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
