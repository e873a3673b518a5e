package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ProviderError carries the status code and body of a rejected Netlify call
// so handlers can pass the provider's status through verbatim.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("netlify API returned status %d: %s", e.StatusCode, e.Body)
}

type Site struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Deploy struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	SSLURL string `json:"ssl_url"`
}

// SiteURL prefers the https URL when the provider reports one.
func (d *Deploy) SiteURL() string {
	if d.SSLURL != "" {
		return d.SSLURL
	}
	return d.URL
}

// NetlifyClient talks to the Netlify REST API. One site is created per
// deployment job; sites are never reused or updated in place.
type NetlifyClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewNetlifyClient(baseURL, token string) *NetlifyClient {
	return &NetlifyClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (n *NetlifyClient) CreateSite(ctx context.Context) (*Site, error) {
	var site Site
	if err := n.do(ctx, "/api/v1/sites", "application/json", strings.NewReader("{}"), &site); err != nil {
		return nil, err
	}
	if site.ID == "" {
		return nil, fmt.Errorf("netlify site creation returned no site id")
	}
	return &site, nil
}

func (n *NetlifyClient) DeployZip(ctx context.Context, siteID, zipPath string) (*Deploy, error) {
	zipContent, err := os.ReadFile(zipPath)
	if err != nil {
		return nil, err
	}

	var deploy Deploy
	path := fmt.Sprintf("/api/v1/sites/%s/deploys", siteID)
	if err := n.do(ctx, path, "application/zip", bytes.NewReader(zipContent), &deploy); err != nil {
		return nil, err
	}
	return &deploy, nil
}

func (n *NetlifyClient) do(ctx context.Context, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{
			StatusCode: resp.StatusCode,
			Body:       bodyPreview(bodyBytes),
		}
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("invalid JSON from %s: %v; body: %s", path, err, bodyPreview(bodyBytes))
	}

	return nil
}
