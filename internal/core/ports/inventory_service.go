package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// ClassificationPage is a classification grid ready for rendering.
type ClassificationPage struct {
	Classification domain.Classification
	Vehicles       []domain.Vehicle
}

type InventoryService interface {
	Classifications(ctx context.Context) ([]domain.Classification, error)
	ByClassification(ctx context.Context, classificationID string) (*ClassificationPage, error)
	VehicleByID(ctx context.Context, id string) (*domain.Vehicle, error)
}
