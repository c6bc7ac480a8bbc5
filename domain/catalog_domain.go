package domain

import (
	"errors"
)

var (
	MessageSuccessSyncCategories = "store categories synced successfully"
	MessageSuccessImportFeed     = "vendor feed imported"
	MessageSuccessGetProduct     = "success get product detail"
	MessageFailedSyncCategories  = "failed to sync store categories"
	MessageFailedImportFeed      = "failed to import vendor feed"
	MessageFailedGetProduct      = "failed to get product detail"

	ErrEmptyFeed         = errors.New("vendor feed is empty")
	ErrCategoryNotSynced = errors.New("vendor category has no store category mapping")
)

type (
	// VendorProduct is one raw record from the retailer product feed.
	VendorProduct struct {
		DisplayName      string  `json:"display_name" validate:"required"`
		Brand            string  `json:"brand"`
		Content          string  `json:"content"`
		VendorCategoryID string  `json:"vendor_category_id" validate:"required"`
		CategoryName     string  `json:"category_name"`
		Price            float64 `json:"price"`
		NormalizedPrice  float64 `json:"normalized_price"`
		Available        bool    `json:"available"`
		WeightArticle    bool    `json:"weight_article"`
		RouteSequence    int     `json:"route_sequence"`
		ThumbnailURL     string  `json:"thumbnail_url"`
		SeasonStartMonth *int    `json:"season_start_month,omitempty"`
		SeasonEndMonth   *int    `json:"season_end_month,omitempty"`
	}

	VendorCategory struct {
		VendorCategoryID string `json:"vendor_category_id" validate:"required"`
		CategoryName     string `json:"category_name" validate:"required"`
		StoreName        string `json:"store_name" validate:"required"`
		DisplayOrder     int    `json:"display_order"`
	}

	SyncCategoriesRequest struct {
		Categories []VendorCategory `json:"categories" validate:"required,min=1,dive"`
	}

	ImportFeedRequest struct {
		Products []VendorProduct `json:"products" validate:"required,min=1,dive"`
	}

	// ImportResult is the boundary-visible outcome of one feed import.
	ImportResult struct {
		ProcessedCount int `json:"processed_count"`
		SkippedCount   int `json:"skipped_count"`
		FailedCount    int `json:"failed_count"`
	}

	ProductResponse struct {
		ID               string  `json:"id"`
		Name             string  `json:"name"`
		Brand            string  `json:"brand"`
		Unit             string  `json:"unit"`
		UnitPrice        float64 `json:"unit_price"`
		NormalizedPrice  float64 `json:"normalized_price"`
		RecipeRelevant   bool    `json:"recipe_relevant"`
		ThumbnailURL     string  `json:"thumbnail_url,omitempty"`
		Description      string  `json:"description,omitempty"`
		SeasonStartMonth *int    `json:"season_start_month,omitempty"`
		SeasonEndMonth   *int    `json:"season_end_month,omitempty"`
	}
)
