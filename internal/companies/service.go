package companies

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Service contains business logic for companies.
type Service struct {
	Repo Repo
}

// Register validates input, hashes the password, and stores a new company.
func (s *Service) Register(ctx context.Context, name, email, password, industry, goal, location string) (Company, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return Company{}, ErrInvalidInput
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return Company{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Company{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return Company{}, err
	}

	now := time.Now().UTC()
	company := Company{
		ID:                   uuid.NewString(),
		Name:                 name,
		Email:                email,
		PasswordHash:         string(hash),
		Industry:             strings.TrimSpace(industry),
		SustainabilityGoal:   strings.TrimSpace(goal),
		HeadquartersLocation: strings.TrimSpace(location),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.Repo.Create(ctx, company); err != nil {
		return Company{}, err
	}
	return company, nil
}

// Login verifies credentials and returns the company profile. The error never
// distinguishes an unknown email from a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (Company, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Company{}, ErrInvalidInput
	}

	company, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Company{}, ErrInvalidCredentials
		}
		return Company{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(company.PasswordHash), []byte(password)); err != nil {
		return Company{}, ErrInvalidCredentials
	}
	return company, nil
}

// Get returns a company by ID.
func (s *Service) Get(ctx context.Context, companyID string) (Company, error) {
	if companyID == "" {
		return Company{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, companyID)
}

// List returns all companies.
func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.Repo.List(ctx)
}

// Update replaces the mutable profile fields of a company.
func (s *Service) Update(ctx context.Context, companyID, name, industry, goal, location string) (Company, error) {
	if companyID == "" {
		return Company{}, ErrInvalidInput
	}
	company, err := s.Repo.GetByID(ctx, companyID)
	if err != nil {
		return Company{}, err
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		company.Name = trimmed
	}
	company.Industry = strings.TrimSpace(industry)
	company.SustainabilityGoal = strings.TrimSpace(goal)
	company.HeadquartersLocation = strings.TrimSpace(location)
	if err := s.Repo.Update(ctx, company); err != nil {
		return Company{}, err
	}
	return s.Repo.GetByID(ctx, companyID)
}

// Delete removes a company.
func (s *Service) Delete(ctx context.Context, companyID string) error {
	if companyID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, companyID)
}
