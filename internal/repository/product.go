package repository

import (
	"context"
	"errors"
	"printwear-storefront/internal/model"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListActive(ctx context.Context) ([]*model.Product, error)
	// UpsertMany syncs the catalog, keyed on printify_id. Variants are
	// replaced wholesale for each product.
	UpsertMany(ctx context.Context, products []*model.Product) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("slug = ?", slug).
		Where("active = ?", true).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) ListActive(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) UpsertMany(ctx context.Context, products []*model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, product := range products {
			variants := product.Variants
			product.Variants = nil

			var existing model.Product
			err := tx.Where("printify_id = ?", product.PrintifyID).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				product.ID = uuid.NewString()
				if err := tx.Create(product).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				product.ID = existing.ID
				if err := tx.Model(&model.Product{}).
					Where("id = ?", existing.ID).
					Updates(map[string]interface{}{
						"slug":        product.Slug,
						"title":       product.Title,
						"description": product.Description,
						"tags_json":   product.TagsJSON,
						"images_json": product.ImagesJSON,
						"active":      product.Active,
						"updated_at":  time.Now(),
					}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("product_id = ?", product.ID).
				Delete(&model.ProductVariant{}).Error; err != nil {
				return err
			}
			for i := range variants {
				variants[i].ProductID = product.ID
			}
			if len(variants) > 0 {
				if err := tx.Create(&variants).Error; err != nil {
					return err
				}
			}
			product.Variants = variants
		}
		return nil
	})
}
