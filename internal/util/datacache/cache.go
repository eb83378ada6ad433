// Package datacache downloads remote dataset files and caches them on disk.
package datacache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// Fetcher retrieves the content at a URL.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// Cache stores downloaded files under a directory, keyed by URL.
type Cache struct {
	// Dir is the directory where files are cached.
	Dir string

	// Refresh forces a download even when a cached copy exists.
	Refresh bool
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "threadmatch", "datasets"), nil
	}
	return filepath.Join(cacheDir, "threadmatch", "datasets"), nil
}

// New creates a cache in dir, or in DefaultDir when dir is empty.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Cache{Dir: dir}, nil
}

// Filename returns the deterministic cache file name for a URL: a hash of the URL
// followed by the extensions of its path, so compression and format stay detectable.
func Filename(rawURL string) string {
	hash := sha256.Sum256([]byte(rawURL))
	name := fmt.Sprintf("%x", hash[:16])

	if u, err := url.Parse(rawURL); err == nil {
		base := path.Base(u.Path)
		exts := ""
		for i := 0; i < 2; i++ {
			ext := path.Ext(base)
			if ext == "" || len(ext) > 6 {
				break
			}
			exts = ext + exts
			base = base[:len(base)-len(ext)]
		}
		name += exts
	}
	return name
}

// Path returns the cache file path for a URL.
func (c *Cache) Path(rawURL string) string {
	return filepath.Join(c.Dir, Filename(rawURL))
}

// Get returns the content at a URL, using the cached copy when present unless Refresh is set.
// Downloaded content is written to the cache. When a refresh download fails, a cached copy is used.
func (c *Cache) Get(ctx context.Context, rawURL string, fetch Fetcher) ([]byte, error) {
	cachedPath := c.Path(rawURL)

	cached, readErr := os.ReadFile(cachedPath) // #nosec G304 - Path is derived from a hash inside the cache directory
	if readErr == nil && !c.Refresh {
		return cached, nil
	}
	if readErr != nil && !errors.Is(readErr, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read cached file: %w", readErr)
	}

	data, err := fetch(ctx, rawURL)
	if err != nil {
		if readErr == nil {
			return cached, nil
		}
		return nil, err
	}

	if err := c.write(cachedPath, data); err != nil {
		return nil, err
	}
	return data, nil
}

// write stores data atomically so readers never see a partial file.
func (c *Cache) write(dest string, data []byte) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(c.Dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to store cache file: %w", err)
	}
	return nil
}
