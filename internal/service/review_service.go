package service

import (
	"context"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// ListByProduct retrieves a product's reviews newest-first with pagination.
func (s *reviewService) ListByProduct(ctx context.Context, productID string, page, limit int) ([]model.Review, model.Pagination, error) {
	pid, ok := parseObjectID(productID)
	if !ok {
		return nil, model.Pagination{}, model.ErrProductNotFound
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	reviews, total, err := s.reviewRepo.ListByProduct(ctx, pid, limit, (page-1)*limit)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	return reviews, model.NewPagination(page, limit, total), nil
}

// recomputeRating re-scans every rating for the product and overwrites the
// cached aggregate.
func (s *reviewService) recomputeRating(ctx context.Context, productID primitive.ObjectID) error {
	ratings, err := s.reviewRepo.RatingsForProduct(ctx, productID)
	if err != nil {
		return err
	}

	rating := model.AggregateRating(ratings)
	if err := s.productRepo.SetRating(ctx, productID, rating); err != nil {
		return err
	}

	s.logger.Debug().
		Str("product_id", productID.Hex()).
		Float64("average", rating.Average).
		Int("count", rating.Count).
		Msg("product rating recomputed")

	return nil
}

// Create inserts the caller's review for a product. The verified flag is a
// one-time snapshot of whether the user has a delivered order containing
// the product.
func (s *reviewService) Create(ctx context.Context, userID string, in model.CreateReviewInput) (*model.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	uid, ok := parseObjectID(userID)
	if !ok {
		return nil, model.ErrUserNotFound
	}
	pid, ok := parseObjectID(in.ProductID)
	if !ok {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	verified, err := s.orderRepo.HasDeliveredProduct(ctx, uid, pid)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	review := &model.Review{
		Product:   pid,
		User:      uid,
		Rating:    in.Rating,
		Title:     in.Title,
		Comment:   in.Comment,
		Verified:  verified,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.recomputeRating(ctx, pid); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("review_id", review.ID.Hex()).
		Str("product_id", in.ProductID).
		Bool("verified", verified).
		Msg("review created")

	return review, nil
}

// Update applies non-zero fields to the caller's own review.
func (s *reviewService) Update(ctx context.Context, userID, reviewID string, in model.UpdateReviewInput) (*model.Review, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rid, ok := parseObjectID(reviewID)
	if !ok {
		return nil, model.ErrReviewNotFound
	}

	review, err := s.reviewRepo.GetByID(ctx, rid)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, model.ErrReviewNotFound
	}
	if review.User.Hex() != userID {
		return nil, model.ErrNotAuthorized
	}

	if in.Rating != 0 {
		review.Rating = in.Rating
	}
	if in.Title != "" {
		review.Title = in.Title
	}
	if in.Comment != "" {
		review.Comment = in.Comment
	}
	review.UpdatedAt = time.Now().UTC()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.recomputeRating(ctx, review.Product); err != nil {
		return nil, err
	}

	return review, nil
}

// Delete removes a review owned by the caller, or any review for admins.
func (s *reviewService) Delete(ctx context.Context, userID, role, reviewID string) error {
	rid, ok := parseObjectID(reviewID)
	if !ok {
		return model.ErrReviewNotFound
	}

	review, err := s.reviewRepo.GetByID(ctx, rid)
	if err != nil {
		return err
	}
	if review == nil {
		return model.ErrReviewNotFound
	}
	if role != model.RoleAdmin && review.User.Hex() != userID {
		return model.ErrNotAuthorized
	}

	if err := s.reviewRepo.Delete(ctx, rid); err != nil {
		return err
	}

	if err := s.recomputeRating(ctx, review.Product); err != nil {
		return err
	}

	s.logger.Info().Str("review_id", reviewID).Msg("review deleted")
	return nil
}
