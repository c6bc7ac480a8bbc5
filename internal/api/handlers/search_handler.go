package handlers

import (
	"errors"

	"recipe-radar/domain"
	"recipe-radar/internal/api/presenters"
	"recipe-radar/pkg/search"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SearchHandler interface {
		SubmitSearch(c *fiber.Ctx) error
		RunSearch(c *fiber.Ctx) error
		CancelSearch(c *fiber.Ctx) error
		GetSearchProgress(c *fiber.Ctx) error
		GetSearchesNeedingAttention(c *fiber.Ctx) error
	}

	searchHandler struct {
		searchService search.SearchService
		validator     *validator.Validate
	}
)

func NewSearchHandler(searchService search.SearchService, validator *validator.Validate) SearchHandler {
	return &searchHandler{
		searchService: searchService,
		validator:     validator,
	}
}

func (h *searchHandler) SubmitSearch(c *fiber.Ctx) error {
	req := new(domain.SubmitSearchRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitSearch, err)
	}

	res, err := h.searchService.Submit(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSubmitSearch, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubmitSearch)
}

func (h *searchHandler) RunSearch(c *fiber.Ctx) error {
	searchID := c.Params("id")

	if err := h.searchService.Run(c.Context(), searchID); err != nil {
		return searchErrorResponse(c, domain.MessageFailedRunSearch, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRunSearch)
}

func (h *searchHandler) CancelSearch(c *fiber.Ctx) error {
	searchID := c.Params("id")

	if err := h.searchService.Cancel(c.Context(), searchID); err != nil {
		return searchErrorResponse(c, domain.MessageFailedCancelSearch, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelSearch)
}

func (h *searchHandler) GetSearchProgress(c *fiber.Ctx) error {
	searchID := c.Params("id")

	res, err := h.searchService.Progress(c.Context(), searchID)
	if err != nil {
		return searchErrorResponse(c, domain.MessageFailedGetSearch, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSearch)
}

func (h *searchHandler) GetSearchesNeedingAttention(c *fiber.Ctx) error {
	res, err := h.searchService.NeedingAttention(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedListSearches, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessListSearches)
}

func searchErrorResponse(c *fiber.Ctx, message string, err error) error {
	var conflict *domain.StateConflictError
	switch {
	case errors.Is(err, domain.ErrSearchNotFound):
		return presenters.ErrorResponse(c, fiber.StatusNotFound, message, err)
	case errors.Is(err, domain.ErrParseUUID):
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, message, err)
	case errors.As(err, &conflict):
		return presenters.ErrorResponse(c, fiber.StatusConflict, message, err)
	default:
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
}
