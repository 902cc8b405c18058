// Package omdb is a client for the OMDb movie catalog (https://www.omdbapi.com).
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/movieverse/api/internal/core/domain"
)

const (
	DefaultBaseURL = "http://www.omdbapi.com/"
	defaultTimeout = 10 * time.Second

	// Cap on the response body we are willing to decode.
	maxBodySize = 1 << 20
)

// Config holds the catalog connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client queries the catalog over plain HTTP. It implements ports.MovieCatalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
	}
}

// envelope is the part of every catalog reply that signals success.
type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (e envelope) failed() bool {
	return strings.EqualFold(e.Response, "False")
}

type searchReply struct {
	envelope
	Search       []domain.MovieSummary `json:"Search"`
	TotalResults string                `json:"totalResults"`
}

// Search runs a free-text title search.
func (c *Client) Search(ctx context.Context, query string) ([]domain.MovieSummary, error) {
	var reply searchReply
	if err := c.get(ctx, url.Values{"s": {query}}, &reply); err != nil {
		return nil, err
	}
	if reply.failed() {
		return nil, notFound(reply.Error, "No results found")
	}
	if reply.Search == nil {
		return []domain.MovieSummary{}, nil
	}
	return reply.Search, nil
}

// Details fetches one title by its exact catalog id (e.g. "tt0372784"). The
// record is returned as the catalog sent it, minus the reply envelope.
func (c *Client) Details(ctx context.Context, id string) (domain.MovieDetail, error) {
	var reply domain.MovieDetail
	if err := c.get(ctx, url.Values{"i": {id}, "plot": {"full"}}, &reply); err != nil {
		return nil, err
	}

	var env envelope
	env.Response, _ = reply["Response"].(string)
	env.Error, _ = reply["Error"].(string)
	if env.failed() {
		return nil, notFound(env.Error, "Movie not found")
	}

	delete(reply, "Response")
	delete(reply, "Error")
	if reply == nil {
		reply = domain.MovieDetail{}
	}
	return reply, nil
}

// get performs the request and decodes the reply into out. Any failure to
// obtain a decodable reply is reported as domain.ErrCatalogDown.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.ErrCatalogDown.WithCause(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ErrCatalogDown.WithCause(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return domain.ErrCatalogDown.WithCause(err)
	}

	// The catalog reports bad keys and unknown titles with a JSON envelope,
	// sometimes on a 4xx status. Only a reply without one is a transport problem.
	if err := json.Unmarshal(body, out); err != nil {
		return domain.ErrCatalogDown.WithCause(fmt.Errorf("decode reply (HTTP %d): %w", resp.StatusCode, err))
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return domain.ErrCatalogDown.WithCause(fmt.Errorf("catalog returned HTTP %d", resp.StatusCode))
	}
	return nil
}

func notFound(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return domain.NewError(domain.ErrNotFound, message)
}
