package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is one user's rating of a listing. (listing_id, user_id) is unique so
// a resubmission updates the existing row instead of adding another.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ListingID  uuid.UUID `gorm:"column:listing_id;type:uuid;not null;uniqueIndex:idx_reviews_listing_user,priority:1" json:"listingId"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_reviews_listing_user,priority:2" json:"userId"`
	UserEmail  string    `gorm:"column:user_email;not null" json:"userEmail"`
	Rating     int       `gorm:"column:rating;not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string    `gorm:"column:review_text;not null" json:"reviewText"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
