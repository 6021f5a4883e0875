// Package offchain fetches the JSON documents that token metadata URIs
// point at.
package offchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jellydator/ttlcache/v3"
)

const (
	defaultCacheTTL        = 10 * time.Minute
	defaultMaxTries        = 4
	defaultInitialInterval = 250 * time.Millisecond
	defaultMaxBodyBytes    = 1 << 20
	defaultRequestTimeout  = 15 * time.Second
)

var ErrMetadataFetch = errors.New("metadata fetch failed")

// FetchError describes a failed fetch of uri. StatusCode is zero when no
// response was received.
type FetchError struct {
	URI        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch metadata %s: status %d: %v", e.URI, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch metadata %s: %v", e.URI, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrMetadataFetch
}

type Config struct {
	Logger     *slog.Logger
	HTTPClient *http.Client

	CacheTTL        time.Duration
	MaxTries        uint
	InitialInterval time.Duration
	MaxBodyBytes    int64
}

func (c *Config) Validate() error {
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	if c.CacheTTL < 0 {
		return errors.New("cache ttl must not be negative")
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = defaultCacheTTL
	}
	if c.MaxTries == 0 {
		c.MaxTries = defaultMaxTries
	}
	if c.InitialInterval == 0 {
		c.InitialInterval = defaultInitialInterval
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	return nil
}

// Fetcher retrieves and normalizes off-chain metadata. Documents are cached
// by URI.
type Fetcher struct {
	log   *slog.Logger
	cfg   *Config
	cache *ttlcache.Cache[string, *MetadataJSON]
}

func NewFetcher(cfg *Config) (*Fetcher, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *MetadataJSON](cfg.CacheTTL),
		ttlcache.WithDisableTouchOnHit[string, *MetadataJSON](),
	)
	return &Fetcher{
		log:   cfg.Logger,
		cfg:   cfg,
		cache: cache,
	}, nil
}

// Fetch returns the document at uri. The result is shared with the cache
// and must not be modified.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (*MetadataJSON, error) {
	if item := f.cache.Get(uri); item != nil {
		return item.Value(), nil
	}

	attempt := 0
	doc, err := backoff.Retry(ctx, func() (*MetadataJSON, error) {
		if attempt > 0 {
			f.log.Warn("--> Retrying metadata fetch", "uri", uri, "attempt", attempt)
		}
		attempt++
		return f.fetchOnce(ctx, uri)
	}, backoff.WithBackOff(f.newBackOff()), backoff.WithMaxTries(f.cfg.MaxTries))
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, &FetchError{URI: uri, Err: err}
	}

	f.cache.Set(uri, doc, ttlcache.DefaultTTL)
	f.log.Debug("--> Fetched metadata", "uri", uri, "name", doc.Name)
	return doc, nil
}

// Invalidate drops uri from the cache.
func (f *Fetcher) Invalidate(uri string) {
	f.cache.Delete(uri)
}

func (f *Fetcher) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.cfg.InitialInterval
	return bo
}

// fetchOnce performs one request. Network errors and 5xx responses are
// retried; everything else is permanent.
func (f *Fetcher) fetchOnce(ctx context.Context, uri string) (*MetadataJSON, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, backoff.Permanent(&FetchError{URI: uri, Err: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.cfg.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(&FetchError{URI: uri, Err: err})
		}
		return nil, &FetchError{URI: uri, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, &FetchError{URI: uri, StatusCode: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &FetchError{URI: uri, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(&FetchError{URI: uri, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))})
	}
	if int64(len(body)) > f.cfg.MaxBodyBytes {
		return nil, backoff.Permanent(&FetchError{URI: uri, StatusCode: resp.StatusCode, Err: fmt.Errorf("body exceeds %d bytes", f.cfg.MaxBodyBytes)})
	}

	doc, err := Parse(body)
	if err != nil {
		return nil, backoff.Permanent(&FetchError{URI: uri, StatusCode: resp.StatusCode, Err: err})
	}
	return doc, nil
}
