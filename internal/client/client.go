// Package client provides an HTTP client for the immo-abidjan REST API.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/evcraddock/immo-abidjan/internal/listing"
	"github.com/evcraddock/immo-abidjan/internal/refresh"
)

// Client is an HTTP client for the listings API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListingsResponse is the response from the list endpoints.
type ListingsResponse struct {
	Listings []listing.Listing `json:"listings"`
	Total    int               `json:"total"`
	Date     string            `json:"date"`
	City     string            `json:"city,omitempty"`
}

// HealthResponse is the response from GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
}

// ListOptions controls filtering for ListListings.
type ListOptions struct {
	Neighborhood    string
	TransactionType string
	Today           bool
}

// ListListings returns listings, optionally restricted to today's.
func (c *Client) ListListings(opts ListOptions) (*ListingsResponse, error) {
	path := "/api/listings"
	if opts.Today {
		path += "/today"
	}

	params := url.Values{}
	if opts.Neighborhood != "" {
		params.Set("neighborhood", opts.Neighborhood)
	}
	if opts.TransactionType != "" {
		params.Set("type", opts.TransactionType)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp ListingsResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetListing returns one listing by id.
func (c *Client) GetListing(id int64) (*listing.Listing, error) {
	var l listing.Listing
	if err := c.get(fmt.Sprintf("/api/listings/%d", id), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Stats returns aggregate counts.
func (c *Client) Stats() (listing.Stats, error) {
	var resp struct {
		Stats listing.Stats `json:"stats"`
	}
	if err := c.get("/api/stats", &resp); err != nil {
		return listing.Stats{}, err
	}
	return resp.Stats, nil
}

// Neighborhoods returns the district list.
func (c *Client) Neighborhoods() ([]string, error) {
	var resp struct {
		Neighborhoods []string `json:"neighborhoods"`
	}
	if err := c.get("/api/neighborhoods", &resp); err != nil {
		return nil, err
	}
	return resp.Neighborhoods, nil
}

// Health reports server liveness and store state.
func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get("/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh triggers one refresh cycle on the server.
func (c *Client) Refresh() (refresh.Result, error) {
	var res refresh.Result
	if err := c.post("/api/admin/refresh", &res); err != nil {
		return refresh.Result{}, err
	}
	return res, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a bodiless POST request and decodes the response.
func (c *Client) post(path string, result interface{}) error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
