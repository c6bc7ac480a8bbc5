package catalog

import (
	"context"
	"errors"

	"recipe-radar/domain"
	"recipe-radar/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CatalogRepository interface {
		UpsertStoreCategory(ctx context.Context, category *entities.StoreCategory) error
		GetStoreCategories(ctx context.Context, storeName string) ([]*entities.StoreCategory, error)
		ProductExists(ctx context.Context, name, brand string) (bool, error)
		CreateProduct(ctx context.Context, product *entities.Product) error
		UpdateProduct(ctx context.Context, product *entities.Product) error
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)

		CreatePendingAnnotation(ctx context.Context, annotation *entities.PendingAnnotation) error
		GetPendingAnnotations(ctx context.Context) ([]*entities.PendingAnnotation, error)
		CompleteAnnotation(ctx context.Context, id string, description string) error
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) UpsertStoreCategory(ctx context.Context, category *entities.StoreCategory) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "vendor_category_id"}, {Name: "store_name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category_name", "display_order", "updated_at",
			}),
		}).
		Create(category).Error
	return domain.NewStoreError("upsert store category", err)
}

func (r *catalogRepository) GetStoreCategories(ctx context.Context, storeName string) ([]*entities.StoreCategory, error) {
	var categories []*entities.StoreCategory
	if err := r.db.WithContext(ctx).
		Where("store_name = ?", storeName).
		Order("display_order asc").
		Find(&categories).Error; err != nil {
		return nil, domain.NewStoreError("get store categories", err)
	}
	return categories, nil
}

func (r *catalogRepository) ProductExists(ctx context.Context, name, brand string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Product{}).
		Where("name = ? AND brand = ?", name, brand).
		Count(&count).Error; err != nil {
		return false, domain.NewStoreError("product exists", err)
	}
	return count > 0, nil
}

func (r *catalogRepository) CreateProduct(ctx context.Context, product *entities.Product) error {
	return domain.NewStoreError("create product", r.db.WithContext(ctx).Create(product).Error)
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	return domain.NewStoreError("update product", r.db.WithContext(ctx).Save(product).Error)
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.NewStoreError("get product", err)
	}
	return &product, nil
}

func (r *catalogRepository) CreatePendingAnnotation(ctx context.Context, annotation *entities.PendingAnnotation) error {
	return domain.NewStoreError("create pending annotation", r.db.WithContext(ctx).Create(annotation).Error)
}

func (r *catalogRepository) GetPendingAnnotations(ctx context.Context) ([]*entities.PendingAnnotation, error) {
	var annotations []*entities.PendingAnnotation
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("status = ?", domain.AnnotationStatusPending).
		Order("created_at asc").
		Find(&annotations).Error; err != nil {
		return nil, domain.NewStoreError("get pending annotations", err)
	}
	return annotations, nil
}

// CompleteAnnotation marks the annotation done and copies the reviewed
// description onto the product in one transaction.
func (r *catalogRepository) CompleteAnnotation(ctx context.Context, id string, description string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var annotation entities.PendingAnnotation
		if err := tx.Where("id = ?", id).First(&annotation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAnnotationNotFound
			}
			return err
		}
		if annotation.Status == domain.AnnotationStatusCompleted {
			return domain.ErrAnnotationCompleted
		}

		if err := tx.Model(&entities.PendingAnnotation{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":      domain.AnnotationStatusCompleted,
				"description": description,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Product{}).
			Where("id = ?", annotation.ProductID).
			Update("description", description).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrAnnotationNotFound) || errors.Is(err, domain.ErrAnnotationCompleted) {
			return err
		}
		return domain.NewStoreError("complete annotation", err)
	}
	return nil
}
