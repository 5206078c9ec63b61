package catalog

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source locates a catalog export: a local CSV file, an http(s) URL
// serving one, or nothing for the built-in catalog.
type Source struct {
	Path      string
	HTTPProxy string
	Headers   map[string]string
}

func (s Source) remote() bool {
	return strings.HasPrefix(s.Path, "http://") || strings.HasPrefix(s.Path, "https://")
}

// Open loads the catalog described by src.
func Open(ctx context.Context, src Source) ([]Specification, error) {
	switch {
	case src.Path == "":
		return Default(), nil
	case src.remote():
		return NewFetcher(src.HTTPProxy, src.Headers).Fetch(ctx, src.Path)
	default:
		return LoadCSV(src.Path)
	}
}

// Fetcher downloads catalog exports from an ERP or file server.
type Fetcher struct {
	client  *http.Client
	headers map[string]string
}

// NewFetcher creates a fetcher, optionally routed through an HTTP proxy.
// An invalid proxy URL is logged and ignored.
func NewFetcher(proxy string, headers map[string]string) *Fetcher {
	var transport http.RoundTripper = &http.Transport{}
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Catalog fetcher will not use a proxy.", proxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}
	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		headers: headers,
	}
}

// Fetch downloads and parses the CSV export at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]Specification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	specs, err := ReadCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", rawURL, err)
	}
	log.Printf("Fetched %d catalog entries from %s", len(specs), rawURL)
	return specs, nil
}
