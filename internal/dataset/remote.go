package dataset

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jmylchreest/threadmatch/internal/match"
	"github.com/jmylchreest/threadmatch/internal/security"
	"github.com/jmylchreest/threadmatch/internal/util/datacache"
	httputil "github.com/jmylchreest/threadmatch/internal/util/http"
)

// RemoteSource loads a dataset file over HTTPS. The format is taken from the URL path.
type RemoteSource struct {
	URL string

	// Cache keeps downloaded copies on disk when set.
	Cache *datacache.Cache

	fetch func(ctx context.Context, url string) ([]byte, error)
}

// NewRemoteSource creates a source for a dataset URL.
func NewRemoteSource(rawURL string) *RemoteSource {
	return &RemoteSource{
		URL: rawURL,
		fetch: func(ctx context.Context, u string) ([]byte, error) {
			return httputil.Fetch(ctx, u, httputil.FetchOptions{
				MaxBytes: MaxFileSize,
				Headers:  map[string]string{"Accept": "application/json, application/yaml, application/toml, */*"},
			})
		},
	}
}

func (s *RemoteSource) String() string {
	return s.URL
}

// Load fetches and decodes the dataset.
func (s *RemoteSource) Load(ctx context.Context) ([]match.Palette, error) {
	if err := security.ValidateHTTPURL(s.URL); err != nil {
		return nil, fmt.Errorf("invalid dataset URL: %w", err)
	}

	parsed, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset URL: %w", err)
	}

	var raw []byte
	if s.Cache != nil {
		raw, err = s.Cache.Get(ctx, s.URL, s.fetch)
	} else {
		raw, err = s.fetch(ctx, s.URL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}

	p, err := decodeNamed(raw, parsed.Path, MaxFileSize)
	if err != nil {
		return nil, err
	}
	return []match.Palette{p}, nil
}

// IsURL reports whether a dataset location is an HTTP(S) URL rather than a path.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
