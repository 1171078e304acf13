package usecase

import (
	"context"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
)

type SimulationUC interface {
	Simulate(ctx context.Context, req *domain.SimulationRequest) (*domain.Simulation, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
