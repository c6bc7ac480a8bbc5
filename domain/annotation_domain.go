package domain

import (
	"errors"
)

const (
	AnnotationStatusPending   = "Pending"
	AnnotationStatusCompleted = "Completed"
)

var (
	MessageSuccessGetAnnotations     = "success get pending annotations"
	MessageSuccessCompleteAnnotation = "annotation completed successfully"
	MessageFailedGetAnnotations      = "failed to get pending annotations"
	MessageFailedCompleteAnnotation  = "failed to complete annotation"

	ErrAnnotationNotFound  = errors.New("annotation not found")
	ErrAnnotationCompleted = errors.New("annotation already completed")
)

type (
	CompleteAnnotationRequest struct {
		Description string `json:"description" validate:"required,min=2"`
	}

	PendingAnnotationResponse struct {
		ID           string `json:"id"`
		ProductID    string `json:"product_id"`
		ProductName  string `json:"product_name"`
		ThumbnailURL string `json:"thumbnail_url"`
	}
)
