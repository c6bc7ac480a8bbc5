package catalog

import (
	"context"
	"fmt"
	"strings"

	"recipe-radar/domain"
	"recipe-radar/entities"
	"recipe-radar/internal/utils/storage"
	"recipe-radar/pkg/provider"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultBatchSize = 10

// deniedCategories are non-food vendor departments that are excluded
// wholesale from the catalog.
var deniedCategories = map[string]bool{
	"niet-voeding":            true,
	"huishouden":              true,
	"persoonlijke verzorging": true,
	"baby en kind":            true,
	"huisdieren":              true,
}

// deniedKeywords mark a product as not recipe-relevant. Matching products
// are still imported, but skip enrichment and annotation.
var deniedKeywords = []string{
	"soap", "shampoo", "detergent", "diapers", "toothpaste",
	"deodorant", "bleach", "razor", "zeep", "wasmiddel", "luiers",
}

type (
	CatalogService interface {
		SyncCategories(ctx context.Context, req domain.SyncCategoriesRequest) (int, error)
		ImportFeed(ctx context.Context, req domain.ImportFeedRequest) (domain.ImportResult, error)
		GetProduct(ctx context.Context, id string) (domain.ProductResponse, error)
		GetPendingAnnotations(ctx context.Context) ([]domain.PendingAnnotationResponse, error)
		CompleteAnnotation(ctx context.Context, id string, req domain.CompleteAnnotationRequest) error
	}

	catalogService struct {
		catalogRepository CatalogRepository
		s3                storage.AwsS3
		images            provider.ImageDownloader
		log               *zap.Logger
		storeName         string
		batchSize         int
	}
)

func NewCatalogService(
	catalogRepository CatalogRepository,
	s3 storage.AwsS3,
	images provider.ImageDownloader,
	log *zap.Logger,
	storeName string,
	batchSize int,
) CatalogService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &catalogService{
		catalogRepository: catalogRepository,
		s3:                s3,
		images:            images,
		log:               log,
		storeName:         storeName,
		batchSize:         batchSize,
	}
}

func (s *catalogService) SyncCategories(ctx context.Context, req domain.SyncCategoriesRequest) (int, error) {
	synced := 0
	for _, c := range req.Categories {
		category := &entities.StoreCategory{
			ID:               uuid.New(),
			VendorCategoryID: c.VendorCategoryID,
			CategoryName:     c.CategoryName,
			StoreName:        c.StoreName,
			DisplayOrder:     c.DisplayOrder,
		}
		if err := s.catalogRepository.UpsertStoreCategory(ctx, category); err != nil {
			return synced, err
		}
		synced++
	}
	return synced, nil
}

// ImportFeed runs the normalizer over a raw vendor feed. Products are
// processed in fixed-size batches; a failure on one product is counted and
// the run continues. The import is idempotent: a (name, brand) pair already
// in the live catalog is skipped.
func (s *catalogService) ImportFeed(ctx context.Context, req domain.ImportFeedRequest) (domain.ImportResult, error) {
	if len(req.Products) == 0 {
		return domain.ImportResult{}, domain.ErrEmptyFeed
	}

	categories, err := s.catalogRepository.GetStoreCategories(ctx, s.storeName)
	if err != nil {
		return domain.ImportResult{}, err
	}
	categoryByVendorID := make(map[string]*entities.StoreCategory, len(categories))
	for _, c := range categories {
		categoryByVendorID[c.VendorCategoryID] = c
	}

	var result domain.ImportResult
	for start := 0; start < len(req.Products); start += s.batchSize {
		end := start + s.batchSize
		if end > len(req.Products) {
			end = len(req.Products)
		}
		s.importBatch(ctx, req.Products[start:end], categoryByVendorID, &result)
	}

	s.log.Info("vendor feed import finished",
		zap.String("store", s.storeName),
		zap.Int("processed", result.ProcessedCount),
		zap.Int("skipped", result.SkippedCount),
		zap.Int("failed", result.FailedCount),
	)
	return result, nil
}

func (s *catalogService) importBatch(
	ctx context.Context,
	batch []domain.VendorProduct,
	categoryByVendorID map[string]*entities.StoreCategory,
	result *domain.ImportResult,
) {
	for _, record := range batch {
		if deniedCategories[strings.ToLower(strings.TrimSpace(record.CategoryName))] {
			result.SkippedCount++
			continue
		}

		category, ok := categoryByVendorID[record.VendorCategoryID]
		if !ok {
			// The category sync must run first; never invent a category.
			s.log.Warn("skipping product",
				zap.String("product", record.DisplayName),
				zap.String("vendor_category_id", record.VendorCategoryID),
				zap.Error(domain.ErrCategoryNotSynced),
			)
			result.SkippedCount++
			continue
		}

		exists, err := s.catalogRepository.ProductExists(ctx, record.DisplayName, record.Brand)
		if err != nil {
			s.log.Error("dedup check failed", zap.String("product", record.DisplayName), zap.Error(err))
			result.FailedCount++
			continue
		}
		if exists {
			result.SkippedCount++
			continue
		}

		product := &entities.Product{
			ID:               uuid.New(),
			Name:             record.DisplayName,
			Brand:            record.Brand,
			Unit:             record.Content,
			UnitPrice:        record.Price,
			NormalizedPrice:  record.NormalizedPrice,
			VendorCategoryID: record.VendorCategoryID,
			RecipeRelevant:   s.recipeRelevant(record.DisplayName),
			ThumbnailURL:     record.ThumbnailURL,
			SeasonStartMonth: record.SeasonStartMonth,
			SeasonEndMonth:   record.SeasonEndMonth,
			StoreCategoryID:  category.ID,
		}
		if err := s.catalogRepository.CreateProduct(ctx, product); err != nil {
			s.log.Error("product insert failed", zap.String("product", record.DisplayName), zap.Error(err))
			result.FailedCount++
			continue
		}
		result.ProcessedCount++

		if product.RecipeRelevant && product.ThumbnailURL != "" {
			s.enrichProduct(ctx, product)
		}
	}
}

func (s *catalogService) recipeRelevant(displayName string) bool {
	name := strings.ToLower(displayName)
	for _, keyword := range deniedKeywords {
		if strings.Contains(name, keyword) {
			return false
		}
	}
	return true
}

// enrichProduct mirrors the vendor thumbnail to S3 and queues the product
// for human description review. Enrichment failures are logged only; the
// imported product stands either way.
func (s *catalogService) enrichProduct(ctx context.Context, product *entities.Product) {
	thumbnailURL := product.ThumbnailURL
	if s.images != nil && s.s3 != nil {
		data, contentType, err := s.images.Download(ctx, product.ThumbnailURL)
		if err != nil {
			s.log.Warn("thumbnail download failed", zap.String("product", product.Name), zap.Error(err))
		} else {
			fileName := fmt.Sprintf("%s.jpg", product.ID)
			objectKey, err := s.s3.UploadFile(ctx, fileName, data, contentType, "product-thumbnails")
			if err != nil {
				s.log.Warn("thumbnail upload failed", zap.String("product", product.Name), zap.Error(err))
			} else {
				thumbnailURL = s.s3.GetPublicLinkKey(objectKey)
				product.ThumbnailURL = thumbnailURL
				if err := s.catalogRepository.UpdateProduct(ctx, product); err != nil {
					s.log.Warn("thumbnail url update failed", zap.String("product", product.Name), zap.Error(err))
				}
			}
		}
	}

	annotation := &entities.PendingAnnotation{
		ID:           uuid.New(),
		ProductID:    product.ID,
		ThumbnailURL: thumbnailURL,
		Status:       domain.AnnotationStatusPending,
	}
	if err := s.catalogRepository.CreatePendingAnnotation(ctx, annotation); err != nil {
		s.log.Warn("annotation enqueue failed", zap.String("product", product.Name), zap.Error(err))
	}
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (domain.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ProductResponse{}, domain.ErrParseUUID
	}
	product, err := s.catalogRepository.GetProductByID(ctx, id)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	return domain.ProductResponse{
		ID:               product.ID.String(),
		Name:             product.Name,
		Brand:            product.Brand,
		Unit:             product.Unit,
		UnitPrice:        product.UnitPrice,
		NormalizedPrice:  product.NormalizedPrice,
		RecipeRelevant:   product.RecipeRelevant,
		ThumbnailURL:     product.ThumbnailURL,
		Description:      product.Description,
		SeasonStartMonth: product.SeasonStartMonth,
		SeasonEndMonth:   product.SeasonEndMonth,
	}, nil
}

func (s *catalogService) GetPendingAnnotations(ctx context.Context) ([]domain.PendingAnnotationResponse, error) {
	annotations, err := s.catalogRepository.GetPendingAnnotations(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.PendingAnnotationResponse, 0, len(annotations))
	for _, a := range annotations {
		item := domain.PendingAnnotationResponse{
			ID:           a.ID.String(),
			ProductID:    a.ProductID.String(),
			ThumbnailURL: a.ThumbnailURL,
		}
		if a.Product != nil {
			item.ProductName = a.Product.Name
		}
		res = append(res, item)
	}
	return res, nil
}

func (s *catalogService) CompleteAnnotation(ctx context.Context, id string, req domain.CompleteAnnotationRequest) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}
	return s.catalogRepository.CompleteAnnotation(ctx, id, req.Description)
}
