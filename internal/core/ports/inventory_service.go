package ports

import (
	"context"

	"github.com/cse-motors/dealership/internal/core/domain"
)

type InventoryService interface {
	Classifications(ctx context.Context) ([]domain.Classification, error)
	AddClassification(ctx context.Context, name string) (*domain.Classification, error)

	VehicleByID(ctx context.Context, id string) (*domain.Vehicle, error)
	VehiclesByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error)
	AddVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Vehicle, error)

	Summary(ctx context.Context) (*domain.ReportSummary, error)
}
