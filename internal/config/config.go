// Package config resolves threadmatch settings from defaults, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jmylchreest/threadmatch/internal/colour"
	"github.com/jmylchreest/threadmatch/internal/dataset"
	"github.com/jmylchreest/threadmatch/internal/match"
)

// Environment variable names.
const (
	EnvDataset     = "THREADMATCH_DATASET"
	EnvMetric      = "THREADMATCH_METRIC"
	EnvLimit       = "THREADMATCH_LIMIT"
	EnvDatasetDir  = "THREADMATCH_DATASET_DIR"
	EnvDatabaseURL = "THREADMATCH_DATABASE_URL"
	EnvRenderer    = "THREADMATCH_RENDERER"
	EnvDebug       = "THREADMATCH_DEBUG"
	EnvCacheDir    = "THREADMATCH_CACHE_DIR"
)

// DefaultDotEnv is the .env file consulted when none is given.
const DefaultDotEnv = ".env"

// Config holds resolved settings.
type Config struct {
	// Dataset is the default dataset name.
	Dataset string

	// Metric is the default distance metric.
	Metric colour.Metric

	// Limit is the default number of results.
	Limit int

	// DatasetLocations are extra dataset files, directories or URLs, separated by commas in the environment.
	DatasetLocations []string

	// DatabaseURL is a Postgres connection string for database-backed datasets.
	DatabaseURL string

	// Renderer is the path to an external renderer plugin.
	Renderer string

	// Debug adds the distance column to table output.
	Debug bool

	// CacheDir holds downloaded remote datasets. Empty means the user cache directory.
	CacheDir string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dataset: dataset.DefaultDataset,
		Metric:  colour.MetricCIEDE2000,
		Limit:   match.DefaultLimit,
	}
}

// Builder provides a fluent interface for constructing a Config.
type Builder struct {
	config     Config
	dotEnvPath string
	dotEnvMust bool
	useEnv     bool
	lookup     func(string) (string, bool)
}

// NewBuilder creates a new Config builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config: Default(),
		lookup: os.LookupEnv,
	}
}

// WithConfig sets the base configuration.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithDotEnv reads values from a .env file. A missing file is ignored.
// Process environment variables take precedence over the file.
func (b *Builder) WithDotEnv(path string) *Builder {
	b.dotEnvPath = path
	b.dotEnvMust = false
	return b
}

// WithDotEnvRequired is like WithDotEnv but a missing file is an error.
func (b *Builder) WithDotEnvRequired(path string) *Builder {
	b.dotEnvPath = path
	b.dotEnvMust = true
	return b
}

// WithEnvConfig applies THREADMATCH_* environment variables.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// Build resolves the configuration.
func (b *Builder) Build() (Config, error) {
	config := b.config
	if !b.useEnv {
		return config, nil
	}

	values := map[string]string{}
	if b.dotEnvPath != "" {
		file, err := godotenv.Read(b.dotEnvPath)
		if err != nil && (b.dotEnvMust || !errors.Is(err, os.ErrNotExist)) {
			return Config{}, fmt.Errorf("failed to read %s: %w", b.dotEnvPath, err)
		}
		for k, v := range file {
			values[k] = v
		}
	}

	// Empty process variables count as unset so the .env value still applies.
	get := func(key string) (string, bool) {
		if v, ok := b.lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}

	if v, ok := get(EnvDataset); ok && v != "" {
		config.Dataset = v
	}
	if v, ok := get(EnvMetric); ok && v != "" {
		m, err := colour.ParseMetric(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMetric, err)
		}
		config.Metric = m
	}
	if v, ok := get(EnvLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: invalid limit %q", EnvLimit, v)
		}
		config.Limit = n
	}
	if v, ok := get(EnvDatasetDir); ok && v != "" {
		config.DatasetLocations = parseList(v)
	}
	if v, ok := get(EnvDatabaseURL); ok {
		config.DatabaseURL = v
	}
	if v, ok := get(EnvRenderer); ok {
		config.Renderer = v
	}
	if v, ok := get(EnvCacheDir); ok {
		config.CacheDir = v
	}
	if v, ok := get(EnvDebug); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: invalid boolean %q", EnvDebug, v)
		}
		config.Debug = debug
	}

	return config, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
