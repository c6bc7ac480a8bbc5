package provider

import (
	"context"
	"fmt"
	"time"

	"recipe-radar/domain"

	"github.com/go-resty/resty/v2"
)

type searchClient struct {
	client *resty.Client
	apiKey string
}

// NewSearchProvider builds a SearchProvider backed by the configured web
// search API.
func NewSearchProvider(baseURL, apiKey string) SearchProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second)
	return &searchClient{client: client, apiKey: apiKey}
}

type searchResponse struct {
	Results []struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	} `json:"results"`
}

func (c *searchClient) DiscoverURLs(ctx context.Context, query string) ([]string, error) {
	var out searchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("X-Subscription-Token", c.apiKey).
		SetQueryParam("q", query+" recipe").
		SetResult(&out).
		Get("/search")
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: "search provider", Err: err}
	}
	if resp.IsError() {
		return nil, &domain.ExternalServiceError{
			Service: "search provider",
			Err:     fmt.Errorf("status %d", resp.StatusCode()),
		}
	}

	seen := make(map[string]bool, len(out.Results))
	urls := make([]string, 0, len(out.Results))
	for _, r := range out.Results {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		urls = append(urls, r.URL)
	}
	return urls, nil
}
