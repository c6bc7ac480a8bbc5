package entities

import (
	"github.com/google/uuid"
)

type Product struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:(uuid_generate_v4())" json:"id"`
	Name             string    `gorm:"uniqueIndex:idx_products_name_brand" json:"name"`
	Brand            string    `gorm:"uniqueIndex:idx_products_name_brand" json:"brand"`
	Unit             string    `json:"unit"`
	UnitPrice        float64   `json:"unit_price"`
	NormalizedPrice  float64   `json:"normalized_price"`
	VendorCategoryID string    `json:"vendor_category_id"`
	RecipeRelevant   bool      `json:"recipe_relevant"`
	ThumbnailURL     string    `json:"thumbnail_url,omitempty"`
	Description      string    `gorm:"type:text" json:"description,omitempty"`
	SeasonStartMonth *int      `json:"season_start_month,omitempty"`
	SeasonEndMonth   *int      `json:"season_end_month,omitempty"`
	StoreCategoryID  uuid.UUID `json:"store_category_id"`

	StoreCategory *StoreCategory `gorm:"foreignKey:StoreCategoryID"`
	Timestamp
}

type StoreCategory struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:(uuid_generate_v4())" json:"id"`
	VendorCategoryID string    `gorm:"uniqueIndex:idx_store_categories_vendor_store" json:"vendor_category_id"`
	CategoryName     string    `json:"category_name"`
	StoreName        string    `gorm:"uniqueIndex:idx_store_categories_vendor_store" json:"store_name"`
	DisplayOrder     int       `json:"display_order"`

	Timestamp
}

type PendingAnnotation struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:(uuid_generate_v4())" json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	Status       string    `json:"status"` // "Pending", "Completed"

	Product *Product `gorm:"foreignKey:ProductID"`
	Timestamp
}
