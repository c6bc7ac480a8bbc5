package handlers

import (
	"errors"

	"recipe-radar/domain"
	"recipe-radar/internal/api/presenters"
	"recipe-radar/pkg/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		SyncCategories(c *fiber.Ctx) error
		ImportFeed(c *fiber.Ctx) error
		GetProduct(c *fiber.Ctx) error
		GetPendingAnnotations(c *fiber.Ctx) error
		CompleteAnnotation(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
		validator      *validator.Validate
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService, validator *validator.Validate) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *catalogHandler) SyncCategories(c *fiber.Ctx) error {
	req := new(domain.SyncCategoriesRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSyncCategories, err)
	}

	synced, err := h.catalogService.SyncCategories(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSyncCategories, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"synced": synced}, fiber.StatusOK, domain.MessageSuccessSyncCategories)
}

func (h *catalogHandler) ImportFeed(c *fiber.Ctx) error {
	req := new(domain.ImportFeedRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportFeed, err)
	}

	result, err := h.catalogService.ImportFeed(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyFeed) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedImportFeed, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedImportFeed, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessImportFeed)
}

func (h *catalogHandler) GetProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	res, err := h.catalogService.GetProduct(c.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetProduct, err)
		}
		if errors.Is(err, domain.ErrParseUUID) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProduct, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetProduct, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProduct)
}

func (h *catalogHandler) GetPendingAnnotations(c *fiber.Ctx) error {
	res, err := h.catalogService.GetPendingAnnotations(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAnnotations, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAnnotations)
}

func (h *catalogHandler) CompleteAnnotation(c *fiber.Ctx) error {
	annotationID := c.Params("id")
	req := new(domain.CompleteAnnotationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompleteAnnotation, err)
	}

	if err := h.catalogService.CompleteAnnotation(c.Context(), annotationID, *req); err != nil {
		if errors.Is(err, domain.ErrAnnotationNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedCompleteAnnotation, err)
		}
		if errors.Is(err, domain.ErrAnnotationCompleted) || errors.Is(err, domain.ErrParseUUID) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCompleteAnnotation, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCompleteAnnotation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCompleteAnnotation)
}
