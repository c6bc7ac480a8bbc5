package domain

import (
	"errors"
)

var (
	MessageSuccessSubmitSearch  = "search submitted successfully"
	MessageSuccessRunSearch     = "search run finished"
	MessageSuccessCancelSearch  = "search cancelled"
	MessageSuccessGetSearch     = "success get search progress"
	MessageSuccessListSearches  = "success get unfinished searches"
	MessageFailedSubmitSearch   = "failed to submit search"
	MessageFailedRunSearch      = "failed to run search"
	MessageFailedCancelSearch   = "failed to cancel search"
	MessageFailedGetSearch      = "failed to get search progress"
	MessageFailedListSearches   = "failed to get unfinished searches"

	ErrSearchNotFound   = errors.New("search not found")
	ErrNoCandidatesLeft = errors.New("search provider returned no candidate URLs")
)

type (
	SubmitSearchRequest struct {
		Query string `json:"query" validate:"required,min=2"`
	}

	SubmitSearchResponse struct {
		ID     string       `json:"id"`
		Query  string       `json:"query"`
		Status SearchStatus `json:"status"`
	}

	// SearchProgressResponse is the only progress detail exposed outside
	// the pipeline: current status plus terminal vs pending URL counts.
	SearchProgressResponse struct {
		ID           string       `json:"id"`
		Query        string       `json:"query"`
		Status       SearchStatus `json:"status"`
		TerminalURLs int64        `json:"terminal_urls"`
		PendingURLs  int64        `json:"pending_urls"`
		Recipes      int64        `json:"recipes"`
	}

	// ParsedIngredient is one (description, quantity, unit) tuple parsed
	// from an accepted recipe page, before resolution.
	ParsedIngredient struct {
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		Unit        string  `json:"unit"`
	}

	// ParsedRecipe is the outcome of investigating one candidate URL.
	ParsedRecipe struct {
		Title               string             `json:"title"`
		Instructions        string             `json:"instructions"`
		TimeEstimateMinutes int                `json:"time_estimate_minutes"`
		ImageURL            string             `json:"image_url,omitempty"`
		Ingredients         []ParsedIngredient `json:"ingredients"`
	}
)
