package recipe

import (
	"context"
	"fmt"

	"recipe-radar/domain"
	"recipe-radar/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	RecipeService interface {
		Materialize(ctx context.Context, req domain.MaterializeRequest) (uuid.UUID, error)
		GetRecipeDetail(ctx context.Context, id string) (domain.RecipeDetailResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		log              *zap.Logger
	}
)

func NewRecipeService(recipeRepository RecipeRepository, log *zap.Logger) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		log:              log,
	}
}

// Materialize persists an accepted candidate URL as a recipe. Every
// ingredient must already carry a resolved product id; the resolution miss
// path has to finish before this call.
func (s *recipeService) Materialize(ctx context.Context, req domain.MaterializeRequest) (uuid.UUID, error) {
	if req.Title == "" {
		return uuid.Nil, &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	if req.Instructions == "" {
		return uuid.Nil, &domain.ValidationError{Field: "instructions", Reason: "is required"}
	}
	if len(req.Ingredients) == 0 {
		return uuid.Nil, &domain.ValidationError{Field: "ingredients", Reason: "must not be empty"}
	}
	for _, ingredient := range req.Ingredients {
		if ingredient.ProductID == nil {
			return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrUnresolvedIngredient, ingredient.Description)
		}
		if ingredient.Quantity <= 0 {
			return uuid.Nil, &domain.ValidationError{Field: "quantity", Reason: "must be positive"}
		}
		if ingredient.Unit == "" {
			return uuid.Nil, &domain.ValidationError{Field: "unit", Reason: "is required"}
		}
	}

	candidate, err := s.recipeRepository.GetCandidateURLByID(ctx, req.CandidateURLID)
	if err != nil {
		return uuid.Nil, err
	}
	if candidate.Status != domain.CandidateStatusAccepted {
		return uuid.Nil, &domain.StateConflictError{
			Entity: "CandidateURL",
			From:   string(candidate.Status),
			To:     string(domain.CandidateStatusCreated),
		}
	}

	recipe := &entities.Recipe{
		ID:                  uuid.New(),
		Title:               req.Title,
		Instructions:        req.Instructions,
		TimeEstimateMinutes: req.TimeEstimateMinutes,
		SourceURL:           candidate.URL,
		ImageURL:            req.ImageURL,
		SearchHistoryID:     candidate.SearchHistoryID,
	}
	ingredients := make([]*entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, ingredient := range req.Ingredients {
		ingredients = append(ingredients, &entities.RecipeIngredient{
			ID:        uuid.New(),
			ProductID: *ingredient.ProductID,
			Quantity:  ingredient.Quantity,
			Unit:      ingredient.Unit,
		})
	}

	if err := s.recipeRepository.Materialize(ctx, req.CandidateURLID, recipe, ingredients); err != nil {
		return uuid.Nil, err
	}

	s.log.Info("recipe materialized",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("source_url", recipe.SourceURL),
		zap.Int("ingredients", len(ingredients)),
	)
	return recipe.ID, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id string) (domain.RecipeDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	res := domain.RecipeDetailResponse{
		ID:                  recipe.ID.String(),
		Title:               recipe.Title,
		Instructions:        recipe.Instructions,
		TimeEstimateMinutes: recipe.TimeEstimateMinutes,
		SourceURL:           recipe.SourceURL,
	}
	if recipe.ImageURL != nil {
		res.ImageURL = *recipe.ImageURL
	}
	for _, ingredient := range recipe.Ingredients {
		res.Ingredients = append(res.Ingredients, domain.RecipeIngredientResponse{
			ProductID: ingredient.ProductID.String(),
			Quantity:  ingredient.Quantity,
			Unit:      ingredient.Unit,
		})
	}
	return res, nil
}
