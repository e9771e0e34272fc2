// Package fetch downloads registry documents over HTTP for the CLI.
// The audit engine itself never touches the network; this package only
// produces bytes that feed registry.LoadJSON or registry.ImportHTML.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/evplan/contrast-audit/internal/utils"
)

// Registries are small JSON/HTML documents; anything bigger than this is
// almost certainly the wrong URL.
const maxRegistryBytes = 10 << 20

var (
	clientOnce    sync.Once
	defaultClient *retryablehttp.Client
)

// DefaultClient returns the shared retrying HTTP client.
func DefaultClient() *retryablehttp.Client {
	clientOnce.Do(func() {
		defaultClient = retryablehttp.NewClient()
		defaultClient.RetryMax = 3
		defaultClient.HTTPClient.Timeout = 30 * time.Second
		defaultClient.Logger = nil
	})
	return defaultClient
}

// SetProxy routes the shared client through the given HTTP proxy.
func SetProxy(proxy string) error {
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		return fmt.Errorf("invalid proxy %q: %w", proxy, err)
	}
	DefaultClient().HTTPClient.Transport = &http.Transport{
		Proxy: http.ProxyURL(proxyURL),
	}
	return nil
}

// Registry downloads a registry document from the given URL.
func Registry(rawURL string) ([]byte, error) {
	utils.Log.Debugf("fetching registry from %s", rawURL)

	req, err := retryablehttp.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch registry: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/html")

	resp, err := DefaultClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch registry: %s returned %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRegistryBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch registry: read body: %w", err)
	}
	if len(body) > maxRegistryBytes {
		return nil, fmt.Errorf("fetch registry: document exceeds %d bytes", maxRegistryBytes)
	}
	return body, nil
}
