package vinted

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"chine/internal/config"
	"chine/internal/listing"
)

const (
	searchPath = "/api/v2/catalog/items"

	// A plain Go user agent gets blocked; mimic a desktop browser.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/123.0 Safari/537.36"

	maxErrorBodyBytes = 160
)

// Client queries the Vinted catalog search endpoint.
type Client struct {
	baseURL    string
	currency   string
	perPage    int
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a search client from the Vinted and watch sections of the
// configuration.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.Vinted.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("vinted base url required")
	}

	client := &Client{
		baseURL:  baseURL,
		currency: cfg.Vinted.Currency,
		perPage:  cfg.Watch.PerPage,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Vinted.RequestTimeout) * time.Second,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// searchResponse mirrors the top-level catalog response.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

// searchItem mirrors a single raw catalog entry. The loosely-typed fields
// stay loose here: ids are usually numbers but have been seen as strings,
// prices arrive either as a scalar ("12.0") or as an object with an
// amount, and the created timestamp is epoch seconds when present at all.
type searchItem struct {
	ID          any             `json:"id"`
	Title       string          `json:"title"`
	Price       json.RawMessage `json:"price"`
	URL         string          `json:"url"`
	Path        string          `json:"path"`
	CreatedAtTS any             `json:"created_at_ts"`
}

// Search fetches the newest listings for the query, first page only.
func (c *Client) Search(ctx context.Context, query string) ([]listing.Listing, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	endpoint, err := url.Parse(c.baseURL + searchPath)
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	params := url.Values{}
	params.Set("search_text", query)
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("page", "1")
	params.Set("order", "newest_first")
	params.Set("currency", c.currency)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("catalog search returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	var payload searchResponse
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	listings := make([]listing.Listing, 0, len(payload.Items))
	for _, item := range payload.Items {
		listings = append(listings, c.normalize(item))
	}
	return listings, nil
}

// normalize converts a raw catalog entry into the domain model. Missing
// fields default rather than fail; a listing without an id keeps its empty
// id and is skipped by the watcher.
func (c *Client) normalize(item searchItem) listing.Listing {
	l := listing.Listing{
		ID:        idString(item.ID),
		Title:     item.Title,
		Price:     decodePrice(item.Price),
		CreatedAt: epochTime(item.CreatedAtTS),
	}

	path := item.URL
	if path == "" {
		path = item.Path
	}
	if path == "" && l.ID != "" {
		path = "/items/" + l.ID
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		l.URL = path
	} else if path != "" {
		l.URL = c.baseURL + path
	}

	return l
}

func idString(v any) string {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return ""
	}
}

func epochTime(v any) *time.Time {
	var ts int64
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			ts = n
		}
	case float64:
		ts = int64(t)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			ts = n
		}
	}
	if ts <= 0 {
		return nil
	}
	created := time.Unix(ts, 0).UTC()
	return &created
}

// decodePrice handles the two price shapes the endpoint produces: a bare
// scalar, or an object carrying an "amount" field.
func decodePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var wrapped struct {
		Amount any `json:"amount"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Amount != nil {
		return listing.ParseAmount(wrapped.Amount)
	}

	var scalar any
	if err := json.Unmarshal(raw, &scalar); err != nil {
		return 0
	}
	return listing.ParseAmount(scalar)
}
