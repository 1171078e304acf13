package usecase

import "github.com/DRSN-tech/credit-simulator/internal/domain"

// assemble собирает ответ из данных продукта и двух готовых графиков.
func assemble(product *domain.Product, sac, price domain.Schedule) *domain.Simulation {
	return &domain.Simulation{
		ProductID:   product.ID,
		ProductName: product.Name,
		Rate:        product.Rate,
		Schedules:   []domain.Schedule{sac, price},
	}
}
