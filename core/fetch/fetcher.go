// Package fetch implements the Fetcher interface.
// It downloads a Figma file document over the REST API, waits out rate
// limits, and keeps raw responses in an on-disk cache.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gaurav-prasanna/designpipe/core"
	"github.com/gaurav-prasanna/designpipe/core/errors"
	"github.com/gaurav-prasanna/designpipe/core/figma"
)

const (
	DefaultBaseURL       = "https://api.figma.com"
	DefaultRateLimitWait = 60 * time.Second
	DefaultMaxAttempts   = 3

	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "designpipe/1.0 (https://github.com/gaurav-prasanna/designpipe)"
	tokenHeader      = "X-Figma-Token"
)

// Options configures a FigmaFetcher. Zero values select the defaults.
type Options struct {
	BaseURL       string
	Token         string
	RateLimitWait time.Duration
	MaxAttempts   int
	// Cache stores response bodies; nil disables caching.
	Cache      *Cache
	HTTPClient *http.Client
	Logger     *log.Logger
}

// FigmaFetcher fetches file documents from the Figma REST API.
type FigmaFetcher struct {
	client   *http.Client
	baseURL  string
	token    string
	wait     time.Duration
	attempts int
	cache    *Cache
	log      *log.Logger
}

// New creates a FigmaFetcher.
func New(opts Options) *FigmaFetcher {
	f := &FigmaFetcher{
		client:   opts.HTTPClient,
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/"),
		token:    opts.Token,
		wait:     opts.RateLimitWait,
		attempts: opts.MaxAttempts,
		cache:    opts.Cache,
		log:      opts.Logger,
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: defaultTimeout}
	}
	if f.baseURL == "" {
		f.baseURL = DefaultBaseURL
	}
	if f.wait <= 0 {
		f.wait = DefaultRateLimitWait
	}
	if f.attempts <= 0 {
		f.attempts = DefaultMaxAttempts
	}
	if f.log == nil {
		f.log = log.New(io.Discard)
	}
	return f
}

// Fetch retrieves and decodes the file identified by fileKey.
func (f *FigmaFetcher) Fetch(ctx context.Context, fileKey string) (*core.FetchResult, error) {
	if fileKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty file key")
	}
	if f.token == "" {
		return nil, errors.New(errors.ErrCodeUnauthorized, "no Figma API token configured")
	}

	cacheKey := "files:" + fileKey
	if f.cache != nil {
		body, ok, err := f.cache.Get(cacheKey)
		if err != nil {
			f.log.Debug("cache read failed", "key", fileKey, "err", err)
		}
		if ok {
			f.log.Debug("using cached document", "key", fileKey)
			return decodeResult(fileKey, http.StatusOK, true, body)
		}
	}

	endpoint := f.baseURL + "/v1/files/" + url.PathEscape(fileKey)
	body, status, err := f.getWithRetry(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	result, err := decodeResult(fileKey, status, false, body)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		if err := f.cache.Set(cacheKey, body); err != nil {
			f.log.Warn("cache write failed", "key", fileKey, "err", err)
		}
	}
	return result, nil
}

// getWithRetry performs the GET, sleeping and retrying only on 429.
func (f *FigmaFetcher) getWithRetry(ctx context.Context, endpoint string) ([]byte, int, error) {
	for attempt := 1; ; attempt++ {
		body, status, retryAfter, err := f.get(ctx, endpoint)
		if err != nil {
			return nil, 0, err
		}
		if status != http.StatusTooManyRequests {
			if err := checkStatus(status, body); err != nil {
				return nil, status, err
			}
			return body, status, nil
		}

		if attempt >= f.attempts {
			return nil, status, errors.New(errors.ErrCodeRateLimited, "Figma rate limit hit %d times", attempt)
		}
		wait := f.wait
		if retryAfter > 0 {
			wait = retryAfter
		}
		f.log.Warn("rate limited, waiting", "wait", wait, "attempt", attempt)

		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (f *FigmaFetcher) get(ctx context.Context, endpoint string) ([]byte, int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(tokenHeader, f.token)
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, 0, ctx.Err()
		}
		return nil, 0, 0, errors.Wrap(errors.ErrCodeNetwork, err, "fetching %s", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, errors.Wrap(errors.ErrCodeNetwork, err, "reading response body")
	}
	return body, resp.StatusCode, retryAfter(resp.Header.Get("Retry-After")), nil
}

// checkStatus classifies a non-429 response.
func checkStatus(code int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "Figma API request failed (%d): %s", code, msg)
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "Figma API request failed (%d): %s", code, msg)
	default:
		return errors.New(errors.ErrCodeNetwork, "Figma API request failed (%d): %s", code, msg)
	}
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func decodeResult(fileKey string, status int, cached bool, body []byte) (*core.FetchResult, error) {
	file, err := figma.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "file %s", fileKey)
	}
	if file.Document == nil {
		return nil, errors.New(errors.ErrCodeMalformedInput, "file %s has no document", fileKey)
	}
	return &core.FetchResult{
		FileKey:    fileKey,
		StatusCode: status,
		Cached:     cached,
		Document:   file,
	}, nil
}
