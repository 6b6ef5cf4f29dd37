package reviews

import (
	"encoding/json"
	"errors"
	"strconv"

	revsvc "nearvisit-backend/internal/application/reviews"
	"nearvisit-backend/internal/middleware"
	"nearvisit-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *revsvc.Service
}

// SubmitReviewRequest accepts rating as a JSON number or numeric string.
type SubmitReviewRequest struct {
	ListingID  string      `json:"listingId"`
	Rating     json.Number `json:"rating"`
	ReviewText string      `json:"reviewText"`
}

// SubmitReview POST /api/reviews: create, or replace the caller's earlier review.
func (h *Handlers) SubmitReview(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, revsvc.ErrMissingFields.Error())
	}
	rating := 0
	if req.Rating != "" {
		n, err := strconv.Atoi(req.Rating.String())
		if err != nil {
			return response.BadRequest(c, revsvc.ErrInvalidRating.Error())
		}
		rating = n
	}

	review, created, err := h.Service.SubmitReview(c.UserContext(),
		revsvc.Reviewer{ID: identity.ID, Email: identity.Email},
		revsvc.SubmitInput{ListingID: req.ListingID, Rating: rating, ReviewText: req.ReviewText})
	if err != nil {
		switch {
		case errors.Is(err, revsvc.ErrMissingFields), errors.Is(err, revsvc.ErrInvalidRating):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, revsvc.ErrListingNotFound):
			return response.NotFound(c, err.Error())
		default:
			log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("submit review failed")
			return response.ServerError(c, "Failed to submit review.")
		}
	}
	if created {
		return response.SuccessCreated(c, "Review submitted successfully.", fiber.Map{"review": review})
	}
	return response.Success(c, "Review updated successfully.", fiber.Map{"review": review})
}

// GetListingReviews GET /api/reviews/:listingId: newest first.
func (h *Handlers) GetListingReviews(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listingId"))
	if err != nil {
		return c.JSON(fiber.Map{"reviews": []struct{}{}})
	}
	reviews, err := h.Service.GetListingReviews(c.UserContext(), listingID)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list reviews failed")
		return response.ServerError(c, "Failed to fetch reviews")
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}
