package locations

import "errors"

var (
	ErrNameRequired        = errors.New("Name is required")
	ErrStateRequired       = errors.New("stateId is required")
	ErrCategoryRequired    = errors.New("categoryId is required")
	ErrStateExists         = errors.New("State already exists")
	ErrStateNotFound       = errors.New("State not found")
	ErrCityNotFound        = errors.New("City not found")
	ErrCategoryNotFound    = errors.New("Category not found")
	ErrSubcategoryNotFound = errors.New("Subcategory not found")
)
