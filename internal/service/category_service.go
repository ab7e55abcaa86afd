package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// List retrieves active categories sorted by name.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get retrieves a category along with its direct subcategories.
func (s *categoryService) Get(ctx context.Context, id string) (*model.Category, []model.Category, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil, model.ErrCategoryNotFound
	}

	category, err := s.categoryRepo.GetByID(ctx, oid)
	if err != nil {
		return nil, nil, err
	}
	if category == nil {
		return nil, nil, model.ErrCategoryNotFound
	}

	children, err := s.categoryRepo.ListByParent(ctx, category.ID)
	if err != nil {
		return nil, nil, err
	}

	return category, children, nil
}

// resolveParent validates the optional parent reference.
func (s *categoryService) resolveParent(ctx context.Context, parent string) (*model.Category, error) {
	if parent == "" {
		return nil, nil
	}

	oid, ok := parseObjectID(parent)
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

// Create inserts a new category with a derived slug.
func (s *categoryService) Create(ctx context.Context, in model.CategoryInput) (*model.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	parent, err := s.resolveParent(ctx, in.Parent)
	if err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	now := time.Now().UTC()
	category := &model.Category{
		Name:        in.Name,
		Slug:        model.Slugify(in.Name),
		Description: in.Description,
		Image:       in.Image,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if parent != nil {
		category.Parent = &parent.ID
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID.Hex()).Str("slug", category.Slug).Msg("category created")
	return category, nil
}

// Update replaces a category's fields, rederiving the slug when the name
// changes.
func (s *categoryService) Update(ctx context.Context, id string, in model.CategoryInput) (*model.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

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

	parent, err := s.resolveParent(ctx, in.Parent)
	if err != nil {
		return nil, err
	}

	if in.Name != category.Name {
		category.Slug = model.Slugify(in.Name)
	}
	category.Name = in.Name
	category.Description = in.Description
	category.Image = in.Image
	if in.IsActive != nil {
		category.IsActive = *in.IsActive
	}
	category.Parent = nil
	if parent != nil {
		category.Parent = &parent.ID
	}
	category.UpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", category.ID.Hex()).Msg("category updated")
	return category, nil
}

// Delete removes a category unless it still has products or subcategories.
// Count checks only, no cascade.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return model.ErrCategoryNotFound
	}

	products, err := s.productRepo.CountByCategory(ctx, oid)
	if err != nil {
		return err
	}
	if products > 0 {
		return model.ErrCategoryHasProducts
	}

	children, err := s.categoryRepo.CountByParent(ctx, oid)
	if err != nil {
		return err
	}
	if children > 0 {
		return model.ErrCategoryHasChildren
	}

	if err := s.categoryRepo.Delete(ctx, oid); err != nil {
		return err
	}

	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}
