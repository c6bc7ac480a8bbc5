package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:(uuid_generate_v4())" json:"id"`
	Title               string    `json:"title"`
	Instructions        string    `gorm:"type:text" json:"instructions"`
	TimeEstimateMinutes int       `json:"time_estimate_minutes"`
	SourceURL           string    `gorm:"type:text" json:"source_url"`
	ImageURL            *string   `json:"image_url,omitempty"`
	SearchHistoryID     uuid.UUID `gorm:"index" json:"search_history_id"`

	SearchHistory *SearchHistory      `gorm:"foreignKey:SearchHistoryID"`
	Ingredients   []*RecipeIngredient `gorm:"foreignKey:RecipeID"`
	Timestamp
}

type RecipeIngredient struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:(uuid_generate_v4())" json:"id"`
	RecipeID  uuid.UUID `gorm:"index" json:"recipe_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`

	Recipe  *Recipe  `gorm:"foreignKey:RecipeID"`
	Product *Product `gorm:"foreignKey:ProductID"`
}
