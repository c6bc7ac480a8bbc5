package entities

import (
	"recipe-radar/domain"

	"github.com/google/uuid"
)

type SearchHistory struct {
	ID     uuid.UUID           `gorm:"type:uuid;primary_key;default:(uuid_generate_v4())" json:"id"`
	Query  string              `json:"query"`
	Status domain.SearchStatus `gorm:"type:varchar(16)" json:"status"`

	CandidateURLs []*CandidateURL `gorm:"foreignKey:SearchHistoryID"`
	Recipes       []*Recipe       `gorm:"foreignKey:SearchHistoryID"`
	Timestamp
}

type CandidateURL struct {
	ID              uuid.UUID              `gorm:"type:uuid;primary_key;default:(uuid_generate_v4())" json:"id"`
	URL             string                 `gorm:"type:text" json:"url"`
	SearchHistoryID uuid.UUID              `gorm:"index" json:"search_history_id"`
	Status          domain.CandidateStatus `gorm:"type:varchar(16)" json:"status"`

	SearchHistory *SearchHistory `gorm:"foreignKey:SearchHistoryID"`
	Timestamp
}
