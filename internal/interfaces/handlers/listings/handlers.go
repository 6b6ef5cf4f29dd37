package listings

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	listsvc "nearvisit-backend/internal/application/listings"
	"nearvisit-backend/internal/application/uploads"
	"nearvisit-backend/internal/middleware"
	"nearvisit-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *listsvc.Service
}

// CreateListing POST /api/listings/create: multipart form with up to 5 "images"
// files. A JSON body is accepted too, without images.
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	field, files, err := readListingForm(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	in := listsvc.CreateListingInput{
		BusinessName:     field.get("businessName"),
		OwnerName:        field.get("ownerName"),
		Email:            field.get("email"),
		Phone:            field.get("phone"),
		AddressLine:      field.get("addressLine"),
		Pincode:          field.get("pincode"),
		State:            field.get("state"),
		City:             field.get("city"),
		CategoryID:       field.get("categoryId"),
		SubcategoryID:    field.get("subcategoryId"),
		Map:              field.get("map"),
		PaymentStatus:    field.get("paymentStatus"),
		PaidAmount:       field.get("paidAmount"),
		SubscriptionType: field.get("subscriptionType"),
	}
	if v, ok := field["isActive"]; ok {
		in.IsActive = &v
	}

	listing, err := h.Service.CreateListing(c.UserContext(), listsvc.Owner{ID: identity.ID, Email: identity.Email}, in, files)
	if err != nil {
		switch {
		case errors.Is(err, listsvc.ErrMissingFields),
			errors.Is(err, listsvc.ErrInvalidReference),
			errors.Is(err, listsvc.ErrInvalidPaidAmount),
			errors.Is(err, listsvc.ErrInvalidPaymentStatus),
			errors.Is(err, listsvc.ErrInvalidSubscriptionType),
			errors.Is(err, uploads.ErrTooManyFiles):
			return response.BadRequest(c, err.Error())
		default:
			log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("create listing failed")
			return response.ServerError(c, "Server error")
		}
	}
	return response.SuccessCreated(c, "Listing created successfully.", fiber.Map{"listing": listing})
}

// GetUserListings GET /api/listings: the caller's listings, newest first.
func (h *Handlers) GetUserListings(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	listings, err := h.Service.GetUserListings(c.UserContext(), identity.ID)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("list listings failed")
		return response.ServerError(c, "Server error")
	}
	return c.JSON(fiber.Map{"listings": listings})
}

// GetListingByID GET /api/listings/specific/:id
func (h *Handlers) GetListingByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.NotFound(c, listsvc.ErrListingNotFound.Error())
	}
	listing, err := h.Service.GetListingByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, listsvc.ErrListingNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("get listing failed")
		return response.ServerError(c, "Server error")
	}
	return c.JSON(fiber.Map{"listing": listing})
}

// formFields holds the submitted scalar fields; a key is present only if the
// client sent it.
type formFields map[string]string

func (f formFields) get(name string) string {
	return f[name]
}

func readListingForm(c *fiber.Ctx) (formFields, []*multipart.FileHeader, error) {
	fields := formFields{}
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, nil, err
		}
		for k, v := range form.Value {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}
		return fields, form.File["images"], nil
	}

	if len(c.Body()) == 0 {
		return fields, nil, nil
	}
	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, nil, err
	}
	for k, v := range body {
		if v != nil {
			fields[k] = asString(v)
		}
	}
	return fields, nil, nil
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
