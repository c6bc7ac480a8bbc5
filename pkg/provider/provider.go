package provider

import (
	"context"

	"recipe-radar/domain"

	"github.com/google/uuid"
)

type (
	// SearchProvider discovers candidate recipe URLs for a query.
	SearchProvider interface {
		DiscoverURLs(ctx context.Context, query string) ([]string, error)
	}

	// PageInvestigator fetches a candidate URL and decides whether it hosts
	// a usable recipe. A nil result with a nil error means the page is not
	// a recipe (off-topic or unparseable content).
	PageInvestigator interface {
		Investigate(ctx context.Context, url string) (*domain.ParsedRecipe, error)
	}

	// ProductResolver maps an ingredient description to a catalog product.
	// The boolean reports whether a product was found at all.
	ProductResolver interface {
		Resolve(ctx context.Context, description string) (uuid.UUID, bool, error)
	}

	// ImageDownloader fetches raw image bytes for mirroring to storage.
	ImageDownloader interface {
		Download(ctx context.Context, url string) ([]byte, string, error)
	}
)
