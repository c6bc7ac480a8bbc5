package recipe

import (
	"context"
	"errors"

	"recipe-radar/domain"
	"recipe-radar/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		GetCandidateURLByID(ctx context.Context, id uuid.UUID) (*entities.CandidateURL, error)
		Materialize(ctx context.Context, candidateURLID uuid.UUID, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		CountBySearchHistory(ctx context.Context, searchHistoryID uuid.UUID) (int64, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetCandidateURLByID(ctx context.Context, id uuid.UUID) (*entities.CandidateURL, error) {
	var candidate entities.CandidateURL
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, domain.NewStoreError("get candidate url", err)
	}
	return &candidate, nil
}

// Materialize commits the recipe, its ingredient rows and the candidate
// URL's ACCEPTED -> CREATED transition as one transaction. Any failure
// rolls the whole unit back, leaving the URL ACCEPTED and no recipe rows
// visible to readers.
func (r *recipeRepository) Materialize(
	ctx context.Context,
	candidateURLID uuid.UUID,
	recipe *entities.Recipe,
	ingredients []*entities.RecipeIngredient,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		for _, ingredient := range ingredients {
			ingredient.RecipeID = recipe.ID
			if err := tx.Create(ingredient).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&entities.CandidateURL{}).
			Where("id = ? AND status = ?", candidateURLID, domain.CandidateStatusAccepted).
			Update("status", domain.CandidateStatusCreated)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current entities.CandidateURL
			from := "unknown"
			if err := tx.Where("id = ?", candidateURLID).First(&current).Error; err == nil {
				from = string(current.Status)
			}
			return &domain.StateConflictError{
				Entity: "CandidateURL",
				From:   from,
				To:     string(domain.CandidateStatusCreated),
			}
		}
		return nil
	})
	if err != nil {
		var conflict *domain.StateConflictError
		if errors.As(err, &conflict) {
			return err
		}
		return domain.NewStoreError("materialize recipe", err)
	}
	return nil
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, domain.NewStoreError("get recipe", err)
	}
	return &recipe, nil
}

func (r *recipeRepository) CountBySearchHistory(ctx context.Context, searchHistoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Recipe{}).
		Where("search_history_id = ?", searchHistoryID).
		Count(&count).Error; err != nil {
		return 0, domain.NewStoreError("count recipes", err)
	}
	return count, nil
}
