package domain

import "github.com/shopspring/decimal"

// ScheduleKind - тип таблицы амортизации.
type ScheduleKind string

const (
	SAC   ScheduleKind = "SAC"
	PRICE ScheduleKind = "PRICE"
)

// Installment - одна строка графика платежей.
type Installment struct {
	Number       int
	Amortization decimal.Decimal
	Interest     decimal.Decimal
	Payment      decimal.Decimal
}

func NewInstallment(number int, amortization, interest, payment decimal.Decimal) Installment {
	return Installment{
		Number:       number,
		Amortization: amortization,
		Interest:     interest,
		Payment:      payment,
	}
}

// Schedule - полный график одного типа.
// Total невалиден (Valid=false) для вырожденного срока <= 0.
type Schedule struct {
	Kind         ScheduleKind
	Total        decimal.NullDecimal
	Installments []Installment
}

// SimulationRequest - желаемая сумма и срок в периодах.
type SimulationRequest struct {
	Principal decimal.Decimal
	Term      int32
}

func NewSimulationRequest(principal decimal.Decimal, term int32) *SimulationRequest {
	return &SimulationRequest{
		Principal: principal,
		Term:      term,
	}
}

// Simulation - итог симуляции: данные продукта и два графика (SAC, PRICE).
type Simulation struct {
	ProductID   int64
	ProductName string
	Rate        decimal.Decimal
	Schedules   []Schedule
}
