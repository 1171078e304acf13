package http

import (
	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/shopspring/decimal"
)

const (
	moneyPlaces = 2

	msgPrincipalRequired  = "O valor desejado deve ser informado"
	msgPrincipalPrecision = "O valor deve ter até 2 casas decimais"
	msgPrincipalPositive  = "O valor desejado deve ser positivo"
	msgTermRequired       = "O prazo deve ser informado"
)

// SimulationRequest - тело POST /api/v1/simulacao.
type SimulationRequest struct {
	ValorDesejado *decimal.Decimal `json:"valorDesejado" swaggertype:"number" example:"900.00"`
	Prazo         *int32           `json:"prazo" example:"5"`
}

// Validate проверяет схему запроса и собирает все нарушения сразу.
func (r *SimulationRequest) Validate() (*domain.SimulationRequest, error) {
	var messages []string

	if r.ValorDesejado == nil {
		messages = append(messages, msgPrincipalRequired)
	} else {
		if !r.ValorDesejado.Equal(r.ValorDesejado.Truncate(moneyPlaces)) {
			messages = append(messages, msgPrincipalPrecision)
		}
		if !r.ValorDesejado.IsPositive() {
			messages = append(messages, msgPrincipalPositive)
		}
	}

	if r.Prazo == nil {
		messages = append(messages, msgTermRequired)
	}

	if len(messages) > 0 {
		return nil, e.NewValidationError(messages)
	}

	return domain.NewSimulationRequest(*r.ValorDesejado, *r.Prazo), nil
}
