package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	MessageSuccessGetRecipe = "success get recipe detail"
	MessageFailedGetRecipe  = "failed to get recipe detail"

	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrCandidateNotFound    = errors.New("candidate URL not found")
	ErrUnresolvedIngredient = errors.New("ingredient has no resolved product")
)

type (
	// ResolvedIngredient is an ingredient tuple whose description has gone
	// through the resolution cache. ProductID must be non-nil before the
	// materializer accepts it.
	ResolvedIngredient struct {
		Description string     `json:"description"`
		ProductID   *uuid.UUID `json:"product_id"`
		Quantity    float64    `json:"quantity"`
		Unit        string     `json:"unit"`
	}

	MaterializeRequest struct {
		CandidateURLID      uuid.UUID            `json:"candidate_url_id"`
		Title               string               `json:"title" validate:"required"`
		Instructions        string               `json:"instructions" validate:"required"`
		TimeEstimateMinutes int                  `json:"time_estimate_minutes"`
		ImageURL            *string              `json:"image_url,omitempty"`
		Ingredients         []ResolvedIngredient `json:"ingredients" validate:"required,min=1"`
	}

	RecipeIngredientResponse struct {
		ProductID string  `json:"product_id"`
		Quantity  float64 `json:"quantity"`
		Unit      string  `json:"unit"`
	}

	RecipeDetailResponse struct {
		ID                  string                     `json:"id"`
		Title               string                     `json:"title"`
		Instructions        string                     `json:"instructions"`
		TimeEstimateMinutes int                        `json:"time_estimate_minutes"`
		SourceURL           string                     `json:"source_url"`
		ImageURL            string                     `json:"image_url,omitempty"`
		Ingredients         []RecipeIngredientResponse `json:"ingredients"`
	}
)
