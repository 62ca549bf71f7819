package service

import (
	"context"
	"strings"

	"github.com/cse-motors/dealership/internal/core/domain"
	"github.com/cse-motors/dealership/internal/core/ports"
)

// InventoryService implements classification and vehicle management plus the
// public browse/search/report reads.
type InventoryService struct {
	repo     ports.InventoryRepository
	accounts ports.AccountRepository
}

func NewInventoryService(repo ports.InventoryRepository, accounts ports.AccountRepository) *InventoryService {
	return &InventoryService{repo: repo, accounts: accounts}
}

func (s *InventoryService) Classifications(ctx context.Context) ([]domain.Classification, error) {
	return s.repo.ListClassifications(ctx)
}

func (s *InventoryService) AddClassification(ctx context.Context, name string) (*domain.Classification, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrClassificationNotFound
	}
	return s.repo.CreateClassification(ctx, name)
}

func (s *InventoryService) VehicleByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.FindVehicleByID(ctx, id)
}

func (s *InventoryService) VehiclesByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error) {
	return s.repo.ListVehiclesByClassification(ctx, classificationID)
}

func (s *InventoryService) AddVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	return s.repo.CreateVehicle(ctx, v)
}

func (s *InventoryService) UpdateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	return s.repo.UpdateVehicle(ctx, v)
}

// DeleteVehicle reports ErrVehicleNotFound for an unknown id rather than
// succeeding silently; the confirmation flow surfaces that as a notice.
func (s *InventoryService) DeleteVehicle(ctx context.Context, id string) error {
	return s.repo.DeleteVehicle(ctx, id)
}

func (s *InventoryService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Vehicle, error) {
	if filter.Empty() {
		return []domain.Vehicle{}, nil
	}
	return s.repo.SearchVehicles(ctx, filter)
}

// Summary gathers the aggregate figures for the reports dashboard.
func (s *InventoryService) Summary(ctx context.Context) (*domain.ReportSummary, error) {
	accounts, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.repo.CountVehicles(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := s.repo.AveragePrice(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.repo.CountByClassification(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.ReportSummary{
		TotalAccounts:   accounts,
		TotalVehicles:   vehicles,
		AveragePrice:    avg,
		Classifications: breakdown,
	}, nil
}
