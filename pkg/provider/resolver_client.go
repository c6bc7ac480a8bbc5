package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-radar/domain"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

type resolverClient struct {
	client *resty.Client
}

// NewProductResolver builds a ProductResolver backed by the vendor catalog
// search endpoint. Invoked only on cache misses.
func NewProductResolver(baseURL string) ProductResolver {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(20 * time.Second).
		SetRetryCount(2)
	return &resolverClient{client: client}
}

type resolveResponse struct {
	ProductID string `json:"product_id"`
}

func (c *resolverClient) Resolve(ctx context.Context, description string) (uuid.UUID, bool, error) {
	var out resolveResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("q", description).
		SetResult(&out).
		Get("/products/search")
	if err != nil {
		return uuid.Nil, false, &domain.ExternalServiceError{Service: "product resolver", Err: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return uuid.Nil, false, nil
	}
	if resp.IsError() {
		return uuid.Nil, false, &domain.ExternalServiceError{
			Service: "product resolver",
			Err:     fmt.Errorf("status %d", resp.StatusCode()),
		}
	}

	id, err := uuid.Parse(out.ProductID)
	if err != nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}
