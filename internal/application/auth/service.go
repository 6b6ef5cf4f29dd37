package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nearvisit-backend/internal/domain"
	"nearvisit-backend/internal/pkg/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service implements signup and login over the users table.
type Service struct {
	DB         *gorm.DB
	Tokens     *TokenService
	BcryptCost int
}

type SignupInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Result is returned by Signup and Login.
type Result struct {
	Token string
	User  *domain.User
}

// Signup registers a user and returns a token for them.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*Result, error) {
	name := strings.TrimSpace(in.Name)
	email := validation.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	var existing domain.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		// Lost a race with a concurrent signup; the unique index caught it.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, User: u}, nil
}

// Login checks credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Result, error) {
	email := validation.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, ErrCredentialsRequired
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, User: &u}, nil
}
