// Package presenter - JSON-представление симуляции и каталога.
// Одна и та же форма отдаётся по HTTP, уходит в Kafka и в архив MinIO.
package presenter

import (
	"encoding/json"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

type Installment struct {
	Numero           int         `json:"numero" example:"1"`
	ValorAmortizacao json.Number `json:"valorAmortizacao" swaggertype:"number" example:"180.00"`
	ValorJuros       json.Number `json:"valorJuros" swaggertype:"number" example:"16.11"`
	ValorPrestacao   json.Number `json:"valorPrestacao" swaggertype:"number" example:"196.11"`
}

type Schedule struct {
	Tipo               string        `json:"tipo" enums:"SAC,PRICE"`
	ValorTotalParcelas *json.Number  `json:"valorTotalParcelas" swaggertype:"number" example:"948.34"`
	Parcelas           []Installment `json:"parcelas"`
}

type Simulation struct {
	CodigoProduto      int64       `json:"codigoProduto" example:"1"`
	DescricaoProduto   string      `json:"descricaoProduto" example:"Produto 1"`
	TaxaJuros          json.Number `json:"taxaJuros" swaggertype:"number" example:"0.0179"`
	ResultadoSimulacao []Schedule  `json:"resultadoSimulacao"`
}

type Product struct {
	CodigoProduto    int64        `json:"codigoProduto" example:"1"`
	DescricaoProduto string       `json:"descricaoProduto" example:"Produto 1"`
	TaxaJuros        json.Number  `json:"taxaJuros" swaggertype:"number" example:"0.0179"`
	PrazoMinimo      int          `json:"prazoMinimo" example:"0"`
	PrazoMaximo      *int         `json:"prazoMaximo" example:"24"`
	ValorMinimo      json.Number  `json:"valorMinimo" swaggertype:"number" example:"200.00"`
	ValorMaximo      *json.Number `json:"valorMaximo" swaggertype:"number" example:"10000.00"`
}

// NewSimulation переводит результат в JSON-форму. Деньги - ровно два знака, ставка как есть.
// Отсутствующий итог графика сериализуется как null.
func NewSimulation(sim *domain.Simulation) Simulation {
	schedules := make([]Schedule, 0, len(sim.Schedules))
	for _, schedule := range sim.Schedules {
		installments := make([]Installment, 0, len(schedule.Installments))
		for _, inst := range schedule.Installments {
			installments = append(installments, Installment{
				Numero:           inst.Number,
				ValorAmortizacao: Money(inst.Amortization),
				ValorJuros:       Money(inst.Interest),
				ValorPrestacao:   Money(inst.Payment),
			})
		}

		var total *json.Number
		if schedule.Total.Valid {
			total = moneyPtr(schedule.Total.Decimal)
		}

		schedules = append(schedules, Schedule{
			Tipo:               string(schedule.Kind),
			ValorTotalParcelas: total,
			Parcelas:           installments,
		})
	}

	return Simulation{
		CodigoProduto:      sim.ProductID,
		DescricaoProduto:   sim.ProductName,
		TaxaJuros:          json.Number(sim.Rate.String()),
		ResultadoSimulacao: schedules,
	}
}

func NewProducts(products []domain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		item := Product{
			CodigoProduto:    p.ID,
			DescricaoProduto: p.Name,
			TaxaJuros:        json.Number(p.Rate.String()),
			PrazoMinimo:      p.MinTerm,
			PrazoMaximo:      p.MaxTerm,
			ValorMinimo:      Money(p.MinPrincipal),
		}
		if p.MaxPrincipal != nil {
			item.ValorMaximo = moneyPtr(*p.MaxPrincipal)
		}
		result = append(result, item)
	}

	return result
}

// Money форматирует сумму ровно с двумя знаками после запятой.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(moneyPlaces))
}

func moneyPtr(d decimal.Decimal) *json.Number {
	m := Money(d)
	return &m
}
