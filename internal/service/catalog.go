package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"printwear-storefront/internal/client"
	"printwear-storefront/internal/config"
	"printwear-storefront/internal/dto"
	"printwear-storefront/internal/model"
	"printwear-storefront/internal/repository"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*dto.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*dto.Product, error)
	// SyncProducts pulls the full Printify catalog and upserts it locally.
	SyncProducts(ctx context.Context) (*dto.SyncResponse, error)
	ListShops(ctx context.Context) ([]client.PrintifyShop, error)
}

type catalogServiceImpl struct {
	printifyClient client.PrintifyClient
	printifyCfg    config.Printify
	productRepo    repository.ProductRepository
	log            *slog.Logger
}

func NewCatalogService(
	printifyClient client.PrintifyClient,
	printifyCfg config.Printify,
	productRepo repository.ProductRepository,
	log *slog.Logger,
) CatalogService {
	return &catalogServiceImpl{
		printifyClient: printifyClient,
		printifyCfg:    printifyCfg,
		productRepo:    productRepo,
		log:            log,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]*dto.Product, error) {
	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]*dto.Product, len(products))
	for i, product := range products {
		out[i] = toDisplayProduct(product)
	}
	return out, nil
}

func (s *catalogServiceImpl) GetProductBySlug(ctx context.Context, slug string) (*dto.Product, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product %q: %w", slug, err)
	}
	return toDisplayProduct(product), nil
}

func (s *catalogServiceImpl) SyncProducts(ctx context.Context) (*dto.SyncResponse, error) {
	if s.printifyCfg.ShopID == "" {
		return nil, fmt.Errorf("%w: PRINTIFY_SHOP_ID is not configured", ErrConfiguration)
	}

	printifyProducts, err := s.printifyClient.GetProducts(ctx, s.printifyCfg.ShopID)
	if err != nil {
		return nil, fmt.Errorf("fetch printify products: %w", err)
	}

	products := make([]*model.Product, len(printifyProducts))
	slugs := make([]string, len(printifyProducts))
	for i := range printifyProducts {
		products[i] = transformProduct(&printifyProducts[i])
		slugs[i] = products[i].Slug
	}

	if err := s.productRepo.UpsertMany(ctx, products); err != nil {
		return nil, fmt.Errorf("upsert products: %w", err)
	}
	s.log.Info("catalog synced", "count", len(products))

	return &dto.SyncResponse{
		Message: fmt.Sprintf("Synced %d products", len(products)),
		Count:   len(products),
		Slugs:   slugs,
	}, nil
}

func (s *catalogServiceImpl) ListShops(ctx context.Context) ([]client.PrintifyShop, error) {
	return s.printifyClient.GetShops(ctx)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(text string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}

// transformProduct converts a Printify product to our catalog row. Disabled
// variants are dropped here so the storefront never offers them.
func transformProduct(p *client.PrintifyProduct) *model.Product {
	variants := make([]model.ProductVariant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if !v.IsEnabled {
			continue
		}
		variants = append(variants, model.ProductVariant{
			VariantID:   v.ID,
			Title:       v.Title,
			PriceCents:  v.Price,
			SKU:         v.SKU,
			IsEnabled:   v.IsEnabled,
			IsAvailable: v.IsAvailable,
			IsDefault:   v.IsDefault,
		})
	}

	images := make([]model.ProductImage, len(p.Images))
	for i, img := range p.Images {
		images[i] = model.ProductImage{
			Src:        img.Src,
			Position:   img.Position,
			IsDefault:  img.IsDefault,
			VariantIDs: img.VariantIDs,
		}
	}

	tagsJSON, _ := json.Marshal(p.Tags)
	imagesJSON, _ := json.Marshal(images)

	return &model.Product{
		PrintifyID:  p.ID,
		Slug:        slugify(p.Title),
		Title:       p.Title,
		Description: p.Description,
		TagsJSON:    string(tagsJSON),
		ImagesJSON:  string(imagesJSON),
		Active:      p.Visible,
		Variants:    variants,
	}
}

// toDisplayProduct mirrors the storefront product shape: enabled variants
// only, price from the default variant, first default image.
func toDisplayProduct(product *model.Product) *dto.Product {
	var tags []string
	_ = json.Unmarshal([]byte(product.TagsJSON), &tags)

	var images []model.ProductImage
	_ = json.Unmarshal([]byte(product.ImagesJSON), &images)

	outImages := make([]dto.ProductImage, len(images))
	imageSrc := ""
	for i, img := range images {
		outImages[i] = dto.ProductImage{
			Src:       img.Src,
			Position:  img.Position,
			IsDefault: img.IsDefault,
		}
		if imageSrc == "" && (img.IsDefault || i == 0) {
			imageSrc = img.Src
		}
	}

	variants := make([]dto.ProductVariant, 0, len(product.Variants))
	price := 0.0
	for _, v := range product.Variants {
		if !v.IsEnabled {
			continue
		}
		variants = append(variants, dto.ProductVariant{
			ID:          v.VariantID,
			Title:       v.Title,
			Price:       float64(v.PriceCents) / 100,
			SKU:         v.SKU,
			IsAvailable: v.IsAvailable,
			IsDefault:   v.IsDefault,
		})
		if v.IsDefault || price == 0 {
			price = float64(v.PriceCents) / 100
		}
	}

	return &dto.Product{
		ID:          product.ID,
		Slug:        product.Slug,
		Title:       product.Title,
		Description: product.Description,
		Tags:        tags,
		Images:      outImages,
		Variants:    variants,
		Price:       price,
		ImageSrc:    imageSrc,
	}
}
