// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/apex/log"

	"github.com/staranto/f1ctlgo/internal/cacheutil"
	"github.com/staranto/f1ctlgo/internal/fault"
	"github.com/staranto/f1ctlgo/internal/version"
)

// Fetcher is the one place network traffic happens. Every request goes through
// the cache first, and a cached entry is always authoritative.
type Fetcher struct {
	Store     *cacheutil.Store
	Client    *http.Client
	UserAgent string
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.Client = c }
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.UserAgent = ua }
}

// New returns a Fetcher backed by store.
func New(store *cacheutil.Store, opts ...Option) *Fetcher {
	f := &Fetcher{
		Store:     store,
		Client:    &http.Client{},
		UserAgent: "f1ctl/" + version.Version,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchOrCache returns the payload for key, reading it from the cache when
// present and otherwise fetching url and writing the body to the cache before
// returning it.
func (f *Fetcher) FetchOrCache(ctx context.Context, url string, key cacheutil.Key) ([]byte, error) {
	if f.Store.Exists(key) {
		log.Debugf("cache hit: %s for %s", key, url)
		return f.Store.Read(key)
	}

	log.Debugf("cache miss: %s, fetching %s", key, url)

	body, err := f.get(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := f.Store.Write(key, body); err != nil {
		return nil, err
	}

	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fault.New(fault.KindNetwork, "create request", url, err)
	}
	req.Header.Set("Accept", "application/json")
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fault.New(fault.KindNetwork, "fetch", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &fault.Error{
			Kind:       fault.KindNetwork,
			Op:         "fetch",
			Resource:   url,
			StatusCode: resp.StatusCode,
		}
	}

	var doc bytes.Buffer
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, fault.New(fault.KindNetwork, "read response", url, fmt.Errorf("failed to read body: %w", err))
	}

	log.Debugf("fetched %s: %d bytes", url, doc.Len())
	return doc.Bytes(), nil
}
