package domain

import "github.com/shopspring/decimal"

// Product описывает продукт кредитного каталога.
// MaxTerm и MaxPrincipal равны nil, если верхняя граница не задана.
type Product struct {
	ID           int64
	Name         string
	Rate         decimal.Decimal // ставка за период, 0.0179 = 1.79%
	MinTerm      int
	MaxTerm      *int
	MinPrincipal decimal.Decimal
	MaxPrincipal *decimal.Decimal
}

// CatalogBounds - минимальная и максимальная сумма по всему каталогу.
type CatalogBounds struct {
	MinPrincipal decimal.Decimal
	MaxPrincipal decimal.Decimal
}

func NewCatalogBounds(minPrincipal, maxPrincipal decimal.Decimal) *CatalogBounds {
	return &CatalogBounds{
		MinPrincipal: minPrincipal,
		MaxPrincipal: maxPrincipal,
	}
}

// HasMaxTerm сообщает, ограничен ли срок продукта сверху.
func (p *Product) HasMaxTerm() bool {
	return p.MaxTerm != nil
}
