package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves active products matching the filter with pagination.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, model.Pagination, error) {
	filter.Normalize()

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int64("total", total).
		Int("page", filter.Page).
		Msg("listed products")

	return products, model.NewPagination(filter.Page, filter.Limit, total), nil
}

// Get retrieves a single product.
func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// resolveCategory checks that the referenced category exists.
func (s *productService) resolveCategory(ctx context.Context, id string) (*model.Category, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, model.ErrCategoryNotFound
	}

	category, err := s.categoryRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, model.ErrCategoryNotFound
	}

	return category, nil
}

// Create inserts a new product.
func (s *productService) Create(ctx context.Context, in model.ProductInput) (*model.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	now := time.Now().UTC()
	product := &model.Product{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		ComparePrice: in.ComparePrice,
		Category:     category.ID,
		Brand:        in.Brand,
		Images:       in.Images,
		Inventory:    in.Inventory,
		IsFeatured:   in.IsFeatured,
		IsActive:     isActive,
		Tags:         in.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID.Hex()).Str("name", product.Name).Msg("product created")
	return product, nil
}

// Update replaces a product's editable fields. The cached rating is owned by
// the review service and never touched here.
func (s *productService) Update(ctx context.Context, id string, in model.ProductInput) (*model.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.ComparePrice = in.ComparePrice
	product.Category = category.ID
	product.Brand = in.Brand
	product.Images = in.Images
	product.Inventory = in.Inventory
	product.IsFeatured = in.IsFeatured
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.Tags = in.Tags
	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID.Hex()).Msg("product updated")
	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, oid); err != nil {
		return err
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
