package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// InventoryRepository defines the interface for vehicle inventory reads.
type InventoryRepository interface {
	ListClassifications(ctx context.Context) ([]domain.Classification, error)
	FindByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error)
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
}
