package reviews

import (
	"context"
	"testing"
	"time"

	"nearvisit-backend/internal/domain"
	"nearvisit-backend/internal/infrastructure/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type knownListings map[uuid.UUID]bool

func (k knownListings) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return k[id], nil
}

func setup(t *testing.T) (*Service, uuid.UUID) {
	listingID := uuid.New()
	return &Service{DB: dbtest.Open(t), Listings: knownListings{listingID: true}}, listingID
}

func TestSubmitReview_Validation(t *testing.T) {
	s, listingID := setup(t)
	ctx := context.Background()
	by := Reviewer{ID: uuid.New(), Email: "r@x.com"}

	_, _, err := s.SubmitReview(ctx, by, SubmitInput{Rating: 4, ReviewText: "ok"})
	assert.ErrorIs(t, err, ErrMissingFields)
	_, _, err = s.SubmitReview(ctx, by, SubmitInput{ListingID: listingID.String(), ReviewText: "ok"})
	assert.ErrorIs(t, err, ErrMissingFields)
	_, _, err = s.SubmitReview(ctx, by, SubmitInput{ListingID: listingID.String(), Rating: 4, ReviewText: " "})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, _, err = s.SubmitReview(ctx, by, SubmitInput{ListingID: listingID.String(), Rating: 6, ReviewText: "ok"})
	assert.ErrorIs(t, err, ErrInvalidRating)
	_, _, err = s.SubmitReview(ctx, by, SubmitInput{ListingID: listingID.String(), Rating: -1, ReviewText: "ok"})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, _, err = s.SubmitReview(ctx, by, SubmitInput{ListingID: uuid.NewString(), Rating: 4, ReviewText: "ok"})
	assert.ErrorIs(t, err, ErrListingNotFound)
	_, _, err = s.SubmitReview(ctx, by, SubmitInput{ListingID: "not-an-id", Rating: 4, ReviewText: "ok"})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestSubmitReview_UpsertsPerReviewer(t *testing.T) {
	s, listingID := setup(t)
	ctx := context.Background()
	by := Reviewer{ID: uuid.New(), Email: "r@x.com"}

	first, created, err := s.SubmitReview(ctx, by, SubmitInput{ListingID: listingID.String(), Rating: 3, ReviewText: "fine"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, by.ID, first.UserID)
	assert.Equal(t, "r@x.com", first.UserEmail)

	second, created, err := s.SubmitReview(ctx, by, SubmitInput{ListingID: listingID.String(), Rating: 5, ReviewText: "great"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Rating)
	assert.Equal(t, "great", second.ReviewText)

	reviews, err := s.GetListingReviews(ctx, listingID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestGetListingReviews_NewestFirst(t *testing.T) {
	s, listingID := setup(t)
	ctx := context.Background()

	_, _, err := s.SubmitReview(ctx, Reviewer{ID: uuid.New(), Email: "a@x.com"}, SubmitInput{ListingID: listingID.String(), Rating: 2, ReviewText: "older"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, _, err = s.SubmitReview(ctx, Reviewer{ID: uuid.New(), Email: "b@x.com"}, SubmitInput{ListingID: listingID.String(), Rating: 4, ReviewText: "newer"})
	require.NoError(t, err)

	reviews, err := s.GetListingReviews(ctx, listingID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "newer", reviews[0].ReviewText)

	none, err := s.GetListingReviews(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRatingCheckConstraint(t *testing.T) {
	s, listingID := setup(t)
	err := s.DB.Create(&domain.Review{ListingID: listingID, UserID: uuid.New(), UserEmail: "x@x.com", Rating: 9, ReviewText: "bad"}).Error
	assert.Error(t, err)
}
