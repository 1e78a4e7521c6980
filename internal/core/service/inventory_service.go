package service

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// InventoryService serves classification grids and vehicle detail lookups.
type InventoryService struct {
	repo ports.InventoryRepository
}

func NewInventoryService(repo ports.InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) Classifications(ctx context.Context) ([]domain.Classification, error) {
	return s.repo.ListClassifications(ctx)
}

// ByClassification returns the classification and its vehicles. The
// classification name comes from the listing so an empty grid still renders
// with a title.
func (s *InventoryService) ByClassification(ctx context.Context, classificationID string) (*ports.ClassificationPage, error) {
	classifications, err := s.repo.ListClassifications(ctx)
	if err != nil {
		return nil, err
	}

	var found *domain.Classification
	for i := range classifications {
		if classifications[i].ID == classificationID {
			found = &classifications[i]
			break
		}
	}
	if found == nil {
		return nil, domain.ErrClassificationNotFound
	}

	vehicles, err := s.repo.FindByClassification(ctx, classificationID)
	if err != nil {
		return nil, err
	}

	return &ports.ClassificationPage{Classification: *found, Vehicles: vehicles}, nil
}

func (s *InventoryService) VehicleByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.FindByID(ctx, id)
}
