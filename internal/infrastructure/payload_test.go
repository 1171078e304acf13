package infrastructure

import (
	"encoding/json"
	"testing"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSimulationEvent_Encode(t *testing.T) {
	sim := &domain.Simulation{
		ProductID:   2,
		ProductName: "Produto 2",
		Rate:        dec("0.0175"),
		Schedules: []domain.Schedule{
			{
				Kind:         domain.SAC,
				Total:        decimal.NewNullDecimal(dec("10100")),
				Installments: []domain.Installment{domain.NewInstallment(1, dec("10000"), dec("100"), dec("10100"))},
			},
			{
				Kind:         domain.PRICE,
				Installments: []domain.Installment{domain.NewInstallment(1, dec("10000"), dec("0"), dec("10000"))},
			},
		},
	}

	event := NewSimulationEvent(sim)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "2", event.Key())

	data, err := event.Encode()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"eventType":"simulacao.realizada"`)
	assert.Contains(t, s, `"taxaJuros":0.0175`)
	assert.Contains(t, s, `"valorTotalParcelas":10100.00`)
	assert.Contains(t, s, `"valorTotalParcelas":null`)
	assert.Contains(t, s, `"valorAmortizacao":10000.00,"valorJuros":100.00,"valorPrestacao":10100.00`)

	var decoded SimulationEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
	require.Len(t, decoded.Simulacao.ResultadoSimulacao, 2)
	assert.Equal(t, "PRICE", decoded.Simulacao.ResultadoSimulacao[1].Tipo)
}
