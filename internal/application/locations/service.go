package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nearvisit-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service manages the reference data listings point at: states, cities,
// categories and subcategories. Parent references are not checked on write;
// a child whose parent is gone is returned with a nil parent.
type Service struct {
	DB *gorm.DB
}

// --- States ---

func (s *Service) ListStates(ctx context.Context) ([]domain.State, error) {
	states := []domain.State{}
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&states).Error; err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	return states, nil
}

func (s *Service) CreateState(ctx context.Context, name string) (*domain.State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.ensureStateNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	state := &domain.State{Name: name}
	if err := s.DB.WithContext(ctx).Create(state).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStateExists
		}
		return nil, fmt.Errorf("create state: %w", err)
	}
	return state, nil
}

// UpdateState renames a state. An empty name keeps the current one.
func (s *Service) UpdateState(ctx context.Context, id uuid.UUID, name string) (*domain.State, error) {
	var state domain.State
	if err := s.DB.WithContext(ctx).First(&state, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrStateNotFound)
	}
	name = strings.TrimSpace(name)
	if name != "" && name != state.Name {
		if err := s.ensureStateNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		state.Name = name
	}
	if err := s.DB.WithContext(ctx).Save(&state).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStateExists
		}
		return nil, fmt.Errorf("update state: %w", err)
	}
	return &state, nil
}

// DeleteState removes a state if present. Deleting a missing state is not an error.
func (s *Service) DeleteState(ctx context.Context, id uuid.UUID) error {
	if err := s.DB.WithContext(ctx).Delete(&domain.State{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

func (s *Service) ensureStateNameFree(ctx context.Context, name string, self uuid.UUID) error {
	var n int64
	q := s.DB.WithContext(ctx).Model(&domain.State{}).Where("name = ?", name)
	if self != uuid.Nil {
		q = q.Where("id <> ?", self)
	}
	if err := q.Count(&n).Error; err != nil {
		return fmt.Errorf("check state name: %w", err)
	}
	if n > 0 {
		return ErrStateExists
	}
	return nil
}

// --- Cities ---

func (s *Service) ListCities(ctx context.Context) ([]domain.City, error) {
	cities := []domain.City{}
	if err := s.DB.WithContext(ctx).Preload("State").Order("created_at ASC").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

func (s *Service) ListCitiesByState(ctx context.Context, stateID uuid.UUID) ([]domain.City, error) {
	cities := []domain.City{}
	if err := s.DB.WithContext(ctx).Where("state_id = ?", stateID).Order("name ASC").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("list cities by state: %w", err)
	}
	return cities, nil
}

func (s *Service) CreateCity(ctx context.Context, name string, stateID uuid.UUID) (*domain.City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if stateID == uuid.Nil {
		return nil, ErrStateRequired
	}
	city := &domain.City{Name: name, StateID: stateID}
	if err := s.DB.WithContext(ctx).Create(city).Error; err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}
	return s.getCity(ctx, city.ID)
}

// UpdateCity applies the non-empty fields. A nil stateID keeps the current state.
func (s *Service) UpdateCity(ctx context.Context, id uuid.UUID, name string, stateID *uuid.UUID) (*domain.City, error) {
	var city domain.City
	if err := s.DB.WithContext(ctx).First(&city, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCityNotFound)
	}
	if n := strings.TrimSpace(name); n != "" {
		city.Name = n
	}
	if stateID != nil && *stateID != uuid.Nil {
		city.StateID = *stateID
	}
	if err := s.DB.WithContext(ctx).Omit("State").Save(&city).Error; err != nil {
		return nil, fmt.Errorf("update city: %w", err)
	}
	return s.getCity(ctx, id)
}

func (s *Service) DeleteCity(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&domain.City{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete city: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCityNotFound
	}
	return nil
}

func (s *Service) getCity(ctx context.Context, id uuid.UUID) (*domain.City, error) {
	var city domain.City
	if err := s.DB.WithContext(ctx).Preload("State").First(&city, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCityNotFound)
	}
	return &city, nil
}

// --- Categories ---

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats := []domain.Category{}
	if err := s.DB.WithContext(ctx).Order("created_at ASC").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	cat := &domain.Category{Name: name}
	if err := s.DB.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error) {
	var cat domain.Category
	if err := s.DB.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrCategoryNotFound)
	}
	if n := strings.TrimSpace(name); n != "" {
		cat.Name = n
	}
	if err := s.DB.WithContext(ctx).Save(&cat).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// --- Subcategories ---

func (s *Service) ListSubcategories(ctx context.Context) ([]domain.Subcategory, error) {
	subs := []domain.Subcategory{}
	if err := s.DB.WithContext(ctx).Preload("Category").Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return subs, nil
}

func (s *Service) ListSubcategoriesByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Subcategory, error) {
	subs := []domain.Subcategory{}
	if err := s.DB.WithContext(ctx).Where("category_id = ?", categoryID).Order("name ASC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list subcategories by category: %w", err)
	}
	return subs, nil
}

func (s *Service) CreateSubcategory(ctx context.Context, name string, categoryID uuid.UUID) (*domain.Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if categoryID == uuid.Nil {
		return nil, ErrCategoryRequired
	}
	sub := &domain.Subcategory{Name: name, CategoryID: categoryID}
	if err := s.DB.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return s.getSubcategory(ctx, sub.ID)
}

// UpdateSubcategory applies the non-empty fields. A nil categoryID keeps the current category.
func (s *Service) UpdateSubcategory(ctx context.Context, id uuid.UUID, name string, categoryID *uuid.UUID) (*domain.Subcategory, error) {
	var sub domain.Subcategory
	if err := s.DB.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrSubcategoryNotFound)
	}
	if n := strings.TrimSpace(name); n != "" {
		sub.Name = n
	}
	if categoryID != nil && *categoryID != uuid.Nil {
		sub.CategoryID = *categoryID
	}
	if err := s.DB.WithContext(ctx).Omit("Category").Save(&sub).Error; err != nil {
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	return s.getSubcategory(ctx, id)
}

func (s *Service) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&domain.Subcategory{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete subcategory: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSubcategoryNotFound
	}
	return nil
}

func (s *Service) getSubcategory(ctx context.Context, id uuid.UUID) (*domain.Subcategory, error) {
	var sub domain.Subcategory
	if err := s.DB.WithContext(ctx).Preload("Category").First(&sub, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrSubcategoryNotFound)
	}
	return &sub, nil
}

// notFound maps gorm.ErrRecordNotFound to sentinel and wraps anything else.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", strings.ToLower(sentinel.Error()), err)
}
