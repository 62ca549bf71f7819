package ports

import (
	"context"

	"github.com/cse-motors/dealership/internal/core/domain"
)

// InventoryRepository defines the interface for classification and vehicle
// persistence.
type InventoryRepository interface {
	ListClassifications(ctx context.Context) ([]domain.Classification, error)
	CreateClassification(ctx context.Context, name string) (*domain.Classification, error)

	FindVehicleByID(ctx context.Context, id string) (*domain.Vehicle, error)
	ListVehiclesByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error)
	CreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
	SearchVehicles(ctx context.Context, filter domain.SearchFilter) ([]domain.Vehicle, error)

	CountVehicles(ctx context.Context) (int64, error)
	AveragePrice(ctx context.Context) (float64, error)
	CountByClassification(ctx context.Context) ([]domain.ClassificationCount, error)
}
