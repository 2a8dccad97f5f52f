package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/c360/ontoquery/errors"
	"github.com/c360/ontoquery/pkg/retry"
)

// DefaultCatalogURL is the OpenAlex API root.
const DefaultCatalogURL = "https://api.openalex.org"

// Fetcher abstracts the external bibliographic catalog. Handlers hold
// a Fetcher; tests substitute stubs.
type Fetcher interface {
	SearchWorks(ctx context.Context, authorName string) ([]Record, error)
	SearchAuthors(ctx context.Context, name string) ([]Record, error)
	SearchConcepts(ctx context.Context, name string) ([]Record, error)
}

// CatalogConfig configures a CatalogClient.
type CatalogConfig struct {
	// BaseURL defaults to DefaultCatalogURL.
	BaseURL string

	// MailTo is attached to every request per the catalog's polite
	// pool convention.
	MailTo string

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client

	// Retry defaults to retry.Collaborator().
	Retry retry.Config

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// CatalogClient fetches records from an OpenAlex-style HTTP catalog.
type CatalogClient struct {
	baseURL string
	mailTo  string
	client  *http.Client
	retry   retry.Config
	logger  *slog.Logger
}

// NewCatalogClient creates a catalog client.
func NewCatalogClient(cfg CatalogConfig) *CatalogClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultCatalogURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.Collaborator()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogClient{
		baseURL: cfg.BaseURL,
		mailTo:  cfg.MailTo,
		client:  cfg.HTTPClient,
		retry:   cfg.Retry,
		logger:  logger.With("component", "catalog"),
	}
}

// SearchWorks queries the works endpoint for papers by an author.
func (c *CatalogClient) SearchWorks(ctx context.Context, authorName string) ([]Record, error) {
	return c.search(ctx, "/works", "raw_author_name.search:"+authorName)
}

// SearchAuthors queries the authors endpoint by display name.
func (c *CatalogClient) SearchAuthors(ctx context.Context, name string) ([]Record, error) {
	return c.search(ctx, "/authors", "display_name.search:"+name)
}

// SearchConcepts queries the concepts endpoint by display name.
func (c *CatalogClient) SearchConcepts(ctx context.Context, name string) ([]Record, error) {
	return c.search(ctx, "/concepts", "display_name.search:"+name)
}

func (c *CatalogClient) search(ctx context.Context, path, filter string) ([]Record, error) {
	params := url.Values{}
	params.Set("filter", filter)
	if c.mailTo != "" {
		params.Set("mailto", c.mailTo)
	}
	endpoint := c.baseURL + path + "?" + params.Encode()

	c.logger.Info("fetching catalog records", "path", path, "filter", filter)

	return retry.DoWithResult(ctx, c.retry, func() ([]Record, error) {
		return c.get(ctx, endpoint)
	})
}

func (c *CatalogClient) get(ctx context.Context, endpoint string) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.NonRetryable(
			errors.WrapInvalid(err, "catalog", "get", "building request failed"))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.WrapTransient(err, "catalog", "get", "request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.WrapTransient(errors.ErrRateLimited, "catalog", "get",
			fmt.Sprintf("status %d", resp.StatusCode))
	case resp.StatusCode >= 500:
		return nil, errors.WrapTransient(errors.ErrCollaborator, "catalog", "get",
			fmt.Sprintf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return nil, retry.NonRetryable(
			errors.WrapInvalid(errors.ErrCollaborator, "catalog", "get",
				fmt.Sprintf("status %d", resp.StatusCode)))
	}

	var body struct {
		Results []Record `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, retry.NonRetryable(
			errors.WrapInvalid(err, "catalog", "get", "decoding response failed"))
	}
	return body.Results, nil
}
