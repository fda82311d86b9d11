package netzero

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for net-zero progress tracking.
type Service struct {
	Repo Repo
}

// Create validates input and stores a new yearly entry.
func (s *Service) Create(ctx context.Context, productID string, year int, targetEmission, actualEmission, alignmentPercentage float64) (Progress, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" || year == 0 {
		return Progress{}, ErrInvalidInput
	}

	progress := Progress{
		ID:                  uuid.NewString(),
		ProductID:           productID,
		Year:                year,
		TargetEmission:      targetEmission,
		ActualEmission:      actualEmission,
		AlignmentPercentage: alignmentPercentage,
		RecordedAt:          time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, progress); err != nil {
		return Progress{}, err
	}
	return progress, nil
}

// Get returns an entry by ID.
func (s *Service) Get(ctx context.Context, progressID string) (Progress, error) {
	if progressID == "" {
		return Progress{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, progressID)
}

// ListByProduct returns a product's entries newest-year-first.
func (s *Service) ListByProduct(ctx context.Context, productID string) ([]Progress, error) {
	if productID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByProduct(ctx, productID)
}

// Update replaces the emission figures of an entry.
func (s *Service) Update(ctx context.Context, progressID string, targetEmission, actualEmission, alignmentPercentage float64) (Progress, error) {
	if progressID == "" {
		return Progress{}, ErrInvalidInput
	}
	progress, err := s.Repo.GetByID(ctx, progressID)
	if err != nil {
		return Progress{}, err
	}
	progress.TargetEmission = targetEmission
	progress.ActualEmission = actualEmission
	progress.AlignmentPercentage = alignmentPercentage
	if err := s.Repo.Update(ctx, progress); err != nil {
		return Progress{}, err
	}
	return s.Repo.GetByID(ctx, progressID)
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, progressID string) error {
	if progressID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, progressID)
}
