package usecase

import (
	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/shopspring/decimal"
)

// validateMinimum отклоняет сумму строго меньше минимума по всему каталогу.
// Проверка выполняется до выбора продукта.
func validateMinimum(principal, catalogMinimum decimal.Decimal) error {
	if principal.LessThan(catalogMinimum) {
		return e.NewBusinessRuleError("valor inferior ao mínimo de R$ %s", catalogMinimum.StringFixed(2))
	}

	return nil
}

// validateTerm проверяет срок по границам выбранного продукта.
// Продукт без максимального срока сверху не ограничен.
func validateTerm(product *domain.Product, term int32) error {
	if int(term) < product.MinTerm {
		return e.NewBusinessRuleError("Prazo inferior a %d parcelas para o valor desejado", product.MinTerm)
	}

	if product.HasMaxTerm() && int(term) > *product.MaxTerm {
		return e.NewBusinessRuleError("Prazo superior a %d parcelas para o valor desejado", *product.MaxTerm)
	}

	return nil
}
