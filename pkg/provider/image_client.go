package provider

import (
	"context"
	"fmt"
	"time"

	"recipe-radar/domain"

	"github.com/go-resty/resty/v2"
)

type imageClient struct {
	client *resty.Client
}

func NewImageDownloader() ImageDownloader {
	return &imageClient{
		client: resty.New().SetTimeout(20 * time.Second),
	}
}

func (c *imageClient) Download(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", &domain.ExternalServiceError{Service: "image download", Err: err}
	}
	if resp.IsError() {
		return nil, "", &domain.ExternalServiceError{
			Service: "image download",
			Err:     fmt.Errorf("status %d for %s", resp.StatusCode(), url),
		}
	}
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return resp.Body(), contentType, nil
}
