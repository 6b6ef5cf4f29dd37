package listings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"nearvisit-backend/internal/application/uploads"
	"nearvisit-backend/internal/domain"
	"nearvisit-backend/internal/pkg/constants"
	"nearvisit-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service creates and reads business listings. Images go through Uploads
// before the row is inserted.
type Service struct {
	DB      *gorm.DB
	Uploads *uploads.Service
}

// CreateListingInput carries the raw multipart form values. Optional fields
// are pointers so "absent" and "empty" can be told apart.
type CreateListingInput struct {
	BusinessName     string `validate:"required"`
	OwnerName        string `validate:"required"`
	Email            string `validate:"required"`
	Phone            string `validate:"required"`
	AddressLine      string `validate:"required"`
	Pincode          string `validate:"required"`
	State            string `validate:"required,uuid"`
	City             string `validate:"required,uuid"`
	CategoryID       string `validate:"required,uuid"`
	SubcategoryID    string `validate:"required,uuid"`
	Map              string
	PaymentStatus    string
	PaidAmount       string
	SubscriptionType string
	IsActive         *string
}

// Owner identifies the authenticated creator.
type Owner struct {
	ID    uuid.UUID
	Email string
}

func (s *Service) CreateListing(ctx context.Context, owner Owner, in CreateListingInput, files []*multipart.FileHeader) (*domain.Listing, error) {
	trimInput(&in)
	if err := validation.Struct(in); err != nil {
		if validation.HasTag(err, "required") {
			return nil, ErrMissingFields
		}
		return nil, ErrInvalidReference
	}
	if len(files) > uploads.MaxFiles {
		return nil, uploads.ErrTooManyFiles
	}

	paidAmount := 0.0
	if in.PaidAmount != "" {
		v, err := strconv.ParseFloat(in.PaidAmount, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrInvalidPaidAmount
		}
		paidAmount = v
	}
	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = constants.PaymentPending
	}
	if !constants.IsValidPaymentStatus(paymentStatus) {
		return nil, ErrInvalidPaymentStatus
	}
	subscription := in.SubscriptionType
	if subscription == "" {
		subscription = constants.SubscriptionFree
	}
	if !constants.IsValidSubscriptionType(subscription) {
		return nil, ErrInvalidSubscriptionType
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive == "true"
	}

	images, err := s.Uploads.Save(files)
	if err != nil {
		return nil, err
	}

	listing := &domain.Listing{
		UserID:           owner.ID,
		CreatedBy:        owner.Email,
		BusinessName:     in.BusinessName,
		OwnerName:        in.OwnerName,
		Email:            in.Email,
		Phone:            in.Phone,
		AddressLine:      in.AddressLine,
		Pincode:          in.Pincode,
		StateID:          uuid.MustParse(in.State),
		CityID:           uuid.MustParse(in.City),
		Map:              in.Map,
		CategoryID:       uuid.MustParse(in.CategoryID),
		SubcategoryID:    uuid.MustParse(in.SubcategoryID),
		PaymentStatus:    paymentStatus,
		PaidAmount:       paidAmount,
		SubscriptionType: subscription,
		Images:           datatypes.JSONSlice[string](images),
		IsActive:         isActive,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		s.Uploads.Remove(images)
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return s.GetListingByID(ctx, listing.ID)
}

// GetUserListings returns the owner's listings, newest first.
func (s *Service) GetUserListings(ctx context.Context, ownerID uuid.UUID) ([]domain.Listing, error) {
	listings := []domain.Listing{}
	err := withReferences(s.DB.WithContext(ctx)).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

func (s *Service) GetListingByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := withReferences(s.DB.WithContext(ctx)).First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &listing, nil
}

// Exists reports whether a listing with id is stored.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&domain.Listing{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check listing: %w", err)
	}
	return n > 0, nil
}

func withReferences(db *gorm.DB) *gorm.DB {
	return db.Preload("State").Preload("City").Preload("Category").Preload("Subcategory")
}

func trimInput(in *CreateListingInput) {
	for _, f := range []*string{
		&in.BusinessName, &in.OwnerName, &in.Email, &in.Phone, &in.AddressLine, &in.Pincode,
		&in.State, &in.City, &in.CategoryID, &in.SubcategoryID,
		&in.Map, &in.PaymentStatus, &in.PaidAmount, &in.SubscriptionType,
	} {
		*f = strings.TrimSpace(*f)
	}
}
