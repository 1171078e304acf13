package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DRSN-tech/credit-simulator/pkg/e"
)

type ErrorResponse struct {
	MensagensErro []string  `json:"mensagensErro"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewErrorResponse(messages ...string) *ErrorResponse {
	return &ErrorResponse{
		MensagensErro: messages,
		Timestamp:     time.Now(),
	}
}

// ToHTTPResponse переводит ошибку в HTTP-статус и список сообщений для клиента.
// Всё, что не распознано как ошибка клиента, скрывается за 500.
func ToHTTPResponse(err error) (int, []string) {
	var (
		businessErr   *e.BusinessRuleError
		validationErr *e.ValidationError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Messages
	case errors.As(err, &businessErr):
		return http.StatusBadRequest, []string{businessErr.Message}
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusBadRequest, []string{e.ErrProductNotFound.Error()}
	case errors.Is(err, e.ErrMalformedJSON):
		return http.StatusBadRequest, []string{e.ErrMalformedJSON.Error()}
	default:
		return http.StatusInternalServerError, []string{e.ErrInternalServerError.Error()}
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, messages := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(messages...))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
