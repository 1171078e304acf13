// Package amortization строит графики платежей SAC (постоянная амортизация)
// и PRICE (постоянный платёж). Пакет не имеет состояния: каждый вызов
// работает только со своими аргументами.
package amortization

import (
	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	moneyPlaces     = 2
	factorPlaces    = 6
	divisionDigits  = 6
	divisionScratch = 28

	// верхняя граница предварительного резервирования строк графика;
	// срок приходит от клиента, поэтому ёмкость от него напрямую не берётся
	maxPreallocInstallments = 420
)

// Generator - порт генератора графиков, которым пользуется usecase.
type Generator interface {
	SAC(principal decimal.Decimal, term int32, rate decimal.Decimal) domain.Schedule
	PRICE(principal decimal.Decimal, term int32, rate decimal.Decimal) domain.Schedule
}

// Calculator - реализация Generator по умолчанию.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// SAC строит график с постоянной амортизацией A = ceil(P/n, 2).
// Остаток уменьшается на A до начисления процентов за тот же период.
func (c *Calculator) SAC(principal decimal.Decimal, term int32, rate decimal.Decimal) domain.Schedule {
	if term <= 0 {
		return payoffSchedule(domain.SAC, principal)
	}

	amortization := principal.Div(decimal.NewFromInt(int64(term))).RoundCeil(moneyPlaces)

	installments := make([]domain.Installment, 0, capacity(term))
	total := decimal.Zero
	balance := principal
	for number := 1; number <= int(term); number++ {
		balance = balance.Sub(amortization)
		interest := balance.Mul(rate).RoundCeil(moneyPlaces)
		payment := amortization.Add(interest).RoundCeil(moneyPlaces)

		installments = append(installments, domain.NewInstallment(number, amortization, interest, payment))
		total = total.Add(payment)
	}

	return domain.Schedule{
		Kind:         domain.SAC,
		Total:        decimal.NewNullDecimal(total),
		Installments: installments,
	}
}

// PRICE строит график с постоянным платежом по формуле аннуитета.
func (c *Calculator) PRICE(principal decimal.Decimal, term int32, rate decimal.Decimal) domain.Schedule {
	if term <= 0 {
		return payoffSchedule(domain.PRICE, principal)
	}

	installment := Installment(principal, term, rate)

	installments := make([]domain.Installment, 0, capacity(term))
	total := decimal.Zero
	balance := principal
	for number := 1; number <= int(term); number++ {
		interest := balance.Mul(rate).RoundCeil(moneyPlaces)
		amortization := installment.Sub(interest)
		balance = balance.Sub(amortization)
		payment := amortization.Add(interest)

		installments = append(installments, domain.NewInstallment(number, amortization, interest, payment))
		total = total.Add(payment)
	}

	return domain.Schedule{
		Kind:         domain.PRICE,
		Total:        decimal.NewNullDecimal(total),
		Installments: installments,
	}
}

// Installment возвращает постоянный платёж PRICE:
// g = round((1+r)^n, 6); round(P*(g*r), 6) / (g-1) с точностью 6 значащих цифр,
// результат округляется half-up до копеек.
// Для нулевой ставки платёж равен P/n, округлённому half-up.
func Installment(principal decimal.Decimal, term int32, rate decimal.Decimal) decimal.Decimal {
	if term <= 0 {
		return principal
	}

	if rate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(term))).Round(moneyPlaces)
	}

	growth, err := decimal.NewFromInt(1).Add(rate).PowInt32(term)
	if err != nil {
		// (1+r)^n с n > 0 не может вернуть ошибку; оставляем ветку для полноты.
		return principal
	}
	growth = growth.Round(factorPlaces)

	numerator := principal.Mul(growth.Mul(rate)).Round(factorPlaces)
	denominator := growth.Sub(decimal.NewFromInt(1))
	if denominator.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(term))).Round(moneyPlaces)
	}

	quotient := roundSignificant(numerator.DivRound(denominator, divisionScratch), divisionDigits)

	return quotient.Round(moneyPlaces)
}

// capacity ограничивает резервирование под строки графика.
func capacity(term int32) int {
	return min(int(term), maxPreallocInstallments)
}

// roundSignificant округляет d half-up до digits значащих цифр.
func roundSignificant(d decimal.Decimal, digits int) decimal.Decimal {
	if d.IsZero() {
		return d
	}

	// позиция старшей цифры относительно запятой
	magnitude := d.NumDigits() + int(d.Exponent())
	return d.Round(int32(digits - magnitude))
}

// payoffSchedule - вырожденный график для срока <= 0: одна строка с погашением всей суммы.
func payoffSchedule(kind domain.ScheduleKind, principal decimal.Decimal) domain.Schedule {
	return domain.Schedule{
		Kind: kind,
		Installments: []domain.Installment{
			domain.NewInstallment(1, principal, decimal.Zero, principal),
		},
	}
}
