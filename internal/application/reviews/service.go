package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nearvisit-backend/internal/domain"
	"nearvisit-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrMissingFields   = errors.New("Rating and review are required.")
	ErrInvalidRating   = errors.New("Rating must be between 1 and 5.")
	ErrListingNotFound = errors.New("Listing not found")
)

// ListingChecker reports whether a listing exists.
type ListingChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	DB       *gorm.DB
	Listings ListingChecker
}

// Reviewer is the authenticated author of a review.
type Reviewer struct {
	ID    uuid.UUID
	Email string
}

type SubmitInput struct {
	ListingID  string `validate:"required"`
	Rating     int    `validate:"required,min=1,max=5"`
	ReviewText string `validate:"required"`
}

// SubmitReview stores the reviewer's review of a listing, replacing any
// earlier one from the same reviewer. created is false when a review was replaced.
func (s *Service) SubmitReview(ctx context.Context, by Reviewer, in SubmitInput) (review *domain.Review, created bool, err error) {
	in.ListingID = strings.TrimSpace(in.ListingID)
	in.ReviewText = strings.TrimSpace(in.ReviewText)
	if err := validation.Struct(in); err != nil {
		if validation.HasTag(err, "required") {
			return nil, false, ErrMissingFields
		}
		return nil, false, ErrInvalidRating
	}
	listingID, err := uuid.Parse(in.ListingID)
	if err != nil {
		return nil, false, ErrListingNotFound
	}
	ok, err := s.Listings.Exists(ctx, listingID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrListingNotFound
	}

	db := s.DB.WithContext(ctx)
	var existing int64
	if err := db.Model(&domain.Review{}).
		Where("listing_id = ? AND user_id = ?", listingID, by.ID).
		Count(&existing).Error; err != nil {
		return nil, false, fmt.Errorf("lookup review: %w", err)
	}

	now := time.Now()
	row := &domain.Review{
		ListingID:  listingID,
		UserID:     by.ID,
		UserEmail:  by.Email,
		Rating:     in.Rating,
		ReviewText: in.ReviewText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	// The unique (listing_id, user_id) index makes this a single atomic write
	// even when the same reviewer submits concurrently.
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "listing_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_email", "rating", "review_text", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, false, fmt.Errorf("upsert review: %w", err)
	}

	var stored domain.Review
	if err := db.Where("listing_id = ? AND user_id = ?", listingID, by.ID).First(&stored).Error; err != nil {
		return nil, false, fmt.Errorf("reload review: %w", err)
	}
	return &stored, existing == 0, nil
}

// GetListingReviews returns a listing's reviews, newest first.
func (s *Service) GetListingReviews(ctx context.Context, listingID uuid.UUID) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if err := s.DB.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}
