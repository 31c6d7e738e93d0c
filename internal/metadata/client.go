package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Scope identifies a tier of the metadata store.
type Scope string

const (
	// ScopeInstance holds values attached to this VM instance.
	ScopeInstance Scope = "instance"

	// ScopeProject holds project-wide values instances fall back to.
	ScopeProject Scope = "project"
)

// Client performs single lookups against the metadata service.
type Client struct {
	root   string
	flavor string
	http   *http.Client
}

// NewClient creates a metadata client for the given service root
// (e.g. "http://metadata.google.internal/computeMetadata/v1"). The
// flavor is sent as the required Metadata-Flavor header. A nil
// httpClient gets a default with a 5 second per-call timeout.
func NewClient(root, flavor string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		root:   strings.TrimRight(root, "/"),
		flavor: flavor,
		http:   httpClient,
	}
}

// Get looks up a key at a single scope and returns the raw response
// body. A non-200 status or any transport failure returns a
// *LookupError carrying the classified kind.
func (c *Client) Get(ctx context.Context, scope Scope, key string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s", c.root, scope, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &LookupError{Kind: KindTransport, Scope: scope, Key: key, Err: err}
	}
	req.Header.Set("Metadata-Flavor", c.flavor)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &LookupError{Kind: classify(err), Scope: scope, Key: key, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &LookupError{Kind: KindStatus, Scope: scope, Key: key, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &LookupError{Kind: KindTransport, Scope: scope, Key: key, Err: err}
	}

	return string(body), nil
}
