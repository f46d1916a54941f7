package subscription

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"proxytray/internal/links"
	"proxytray/internal/logger"

	"golang.org/x/net/proxy"
)

// maxBodySize caps how much of a subscription body is read.
const maxBodySize = 16 << 20

// Fetcher downloads subscription bodies and extracts their share links.
type Fetcher struct {
	Timeout   time.Duration
	ProxyURL  string // socks5://, socks5h:// or http(s)://; empty for a direct connection
	UserAgent string
}

func (f *Fetcher) client() (*http.Client, error) {
	return NewClient(f.Timeout, f.ProxyURL)
}

// NewClient returns an HTTP client that dials through proxyURL, which may be a
// socks5://, socks5h:// or http(s):// URL. An empty proxyURL connects directly.
func NewClient(timeout time.Duration, proxyURL string) (*http.Client, error) {
	client := &http.Client{Timeout: timeout}
	if proxyURL == "" {
		return client, nil
	}

	pURL, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url: %w", err)
	}

	switch pURL.Scheme {
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(pURL, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("invalid socks5 proxy: %w", err)
		}
		ctxDialer, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks5 dialer does not support contexts")
		}
		client.Transport = &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return ctxDialer.DialContext(ctx, network, addr)
			},
		}
	case "http", "https":
		client.Transport = &http.Transport{
			Proxy: http.ProxyURL(pURL),
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", pURL.Scheme)
	}
	logger.Log.Debugf("HTTP client using proxy: %s", pURL.Redacted())
	return client, nil
}

// Fetch downloads targetURL and returns the share links it contains.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) ([]string, error) {
	client, err := f.client()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid subscription url: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	logger.Log.Debugf("Fetching URL: %s", targetURL)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return links.DecodeSubscription(string(bodyBytes)), nil
}
