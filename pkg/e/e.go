package e

import (
	"fmt"
	"strings"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки каталога продуктов (LookupFailure)
	ErrProductNotFound = fmt.Errorf("Produto não encontrado")
	ErrCacheMiss       = fmt.Errorf("cache miss")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrMissingEnvVariable   = fmt.Errorf("required environment variable is not set")
	ErrUnknownPublishMode   = fmt.Errorf("unknown publish mode")

	// Схема БД осталась в состоянии незавершённой миграции
	ErrDirtyMigration = fmt.Errorf("dirty migration")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrMalformedJSON    = fmt.Errorf("corpo da requisição inválido")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("Erro interno do servidor")
)

// BusinessRuleError - нарушение бизнес-правила, которое пользователь может исправить
// (значение ниже минимума каталога, срок вне границ продукта).
type BusinessRuleError struct {
	Message string
}

func NewBusinessRuleError(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

func (b *BusinessRuleError) Error() string {
	return b.Message
}

// ValidationError агрегирует ошибки схемы входящего запроса.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Messages, "; ")
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
