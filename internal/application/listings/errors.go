package listings

import "errors"

var (
	ErrMissingFields           = errors.New("Please fill all required fields.")
	ErrInvalidReference        = errors.New("Invalid state, city, category or subcategory id.")
	ErrInvalidPaidAmount       = errors.New("paidAmount must be a number.")
	ErrInvalidPaymentStatus    = errors.New("paymentStatus must be one of: paid, pending, failed.")
	ErrInvalidSubscriptionType = errors.New("subscriptionType must be one of: free, basic, premium.")
	ErrListingNotFound         = errors.New("Listing not found")
)
