package entities

import (
	"github.com/google/uuid"
)

// IngredientCache maps a free-text ingredient description to a catalog
// product. The description column carries a plain index, not a unique one:
// duplicate descriptions accumulate as separate rows and lookup takes the
// oldest match.
type IngredientCache struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:(uuid_generate_v4())" json:"id"`
	Description string    `gorm:"type:text;index" json:"description"`
	ProductID   uuid.UUID `json:"product_id"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Timestamp
}
