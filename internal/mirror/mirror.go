package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Metadata is the role/verified pair the external identity provider holds
// for a principal. It is advisory only; the identity record is
// authoritative and must win whenever the two disagree.
type Metadata struct {
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// Store is the external identity mirror. GetMetadata returns (nil, nil)
// for a principal the provider does not know yet.
type Store interface {
	GetMetadata(ctx context.Context, principalID string) (*Metadata, error)
	SetMetadata(ctx context.Context, principalID string, md Metadata) error
}

// Client talks to the identity provider's metadata REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ Store = (*Client)(nil)

// NewClient creates a mirror client for the given provider endpoint.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) metadataURL(principalID string) string {
	return fmt.Sprintf("%s/v1/principals/%s/metadata", c.baseURL, principalID)
}

// GetMetadata fetches the metadata bag for a principal.
func (c *Client) GetMetadata(ctx context.Context, principalID string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.metadataURL(principalID), nil)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get metadata: unexpected status %d", resp.StatusCode)
	}

	var md Metadata
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &md, nil
}

// SetMetadata replaces the metadata bag for a principal.
func (c *Client) SetMetadata(ctx context.Context, principalID string, md Metadata) error {
	payload, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.metadataURL(principalID), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("set metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("set metadata: unexpected status %d", resp.StatusCode)
	}
	return nil
}
