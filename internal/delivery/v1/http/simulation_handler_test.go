package http

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/infrastructure"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSimulationUC struct {
	mu       sync.Mutex
	requests []*domain.SimulationRequest
	sim      *domain.Simulation
	products []domain.Product
	err      error
}

func (f *fakeSimulationUC) Simulate(_ context.Context, req *domain.SimulationRequest) (*domain.Simulation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.sim, nil
}

func (f *fakeSimulationUC) ListProducts(context.Context) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestRouter(uc *fakeSimulationUC) http.Handler {
	mux := chi.NewRouter()
	NewRouter(mux, logger.NewNop()).Init(uc)
	return mux
}

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulacao", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func messages(body map[string]any) []string {
	raw, _ := body["mensagensErro"].([]any)
	result := make([]string, 0, len(raw))
	for _, m := range raw {
		result = append(result, m.(string))
	}
	return result
}

func sampleSimulation() *domain.Simulation {
	return &domain.Simulation{
		ProductID:   1,
		ProductName: "Produto 1",
		Rate:        dec("0.0179"),
		Schedules: []domain.Schedule{
			{
				Kind:  domain.SAC,
				Total: decimal.NewNullDecimal(dec("916.11")),
				Installments: []domain.Installment{
					domain.NewInstallment(1, dec("300"), dec("10.74"), dec("310.74")),
					domain.NewInstallment(2, dec("300"), dec("5.37"), dec("305.37")),
					domain.NewInstallment(3, dec("300"), dec("0"), dec("300")),
				},
			},
			{
				Kind:  domain.PRICE,
				Total: decimal.NewNullDecimal(dec("932.4")),
				Installments: []domain.Installment{
					domain.NewInstallment(1, dec("294.69"), dec("16.11"), dec("310.8")),
					domain.NewInstallment(2, dec("299.96"), dec("10.84"), dec("310.8")),
					domain.NewInstallment(3, dec("305.33"), dec("5.47"), dec("310.8")),
				},
			},
		},
	}
}

func TestSimulate_Success(t *testing.T) {
	uc := &fakeSimulationUC{sim: sampleSimulation()}
	h := newTestRouter(uc)

	rec, body := post(t, h, `{"valorDesejado": 900.00, "prazo": 3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Len(t, uc.requests, 1)
	assert.True(t, uc.requests[0].Principal.Equal(dec("900")))
	assert.Equal(t, int32(3), uc.requests[0].Term)

	assert.EqualValues(t, 1, body["codigoProduto"])
	assert.Equal(t, "Produto 1", body["descricaoProduto"])
	assert.Contains(t, rec.Body.String(), `"taxaJuros":0.0179`)
	assert.Contains(t, rec.Body.String(), `"valorTotalParcelas":932.40`)
	assert.Contains(t, rec.Body.String(), `"numero":3,"valorAmortizacao":300.00,"valorJuros":0.00,"valorPrestacao":300.00`)

	results := body["resultadoSimulacao"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "SAC", results[0].(map[string]any)["tipo"])
	assert.Equal(t, "PRICE", results[1].(map[string]any)["tipo"])
}

func TestSimulate_BodyMatchesPublishedEvent(t *testing.T) {
	sim := sampleSimulation()
	rec, _ := post(t, newTestRouter(&fakeSimulationUC{sim: sim}), `{"valorDesejado": 900.00, "prazo": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := infrastructure.NewSimulationEvent(sim).Encode()
	require.NoError(t, err)

	var event struct {
		Simulacao json.RawMessage `json:"simulacao"`
	}
	require.NoError(t, json.Unmarshal(data, &event))
	assert.JSONEq(t, string(event.Simulacao), rec.Body.String())
}

func TestSimulate_SchemaValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"empty body", `{}`, []string{msgPrincipalRequired, msgTermRequired}},
		{"null principal", `{"valorDesejado": null, "prazo": 5}`, []string{msgPrincipalRequired}},
		{"three decimals", `{"valorDesejado": 900.001, "prazo": 5}`, []string{msgPrincipalPrecision}},
		{"negative with three decimals", `{"valorDesejado": -1.555, "prazo": 5}`, []string{msgPrincipalPrecision, msgPrincipalPositive}},
		{"zero", `{"valorDesejado": 0, "prazo": 5}`, []string{msgPrincipalPositive}},
		{"missing term", `{"valorDesejado": 900}`, []string{msgTermRequired}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeSimulationUC{sim: sampleSimulation()}

			rec, body := post(t, newTestRouter(uc), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, messages(body))
			assert.NotEmpty(t, body["timestamp"])
			assert.Empty(t, uc.requests, "usecase must not run on schema errors")
		})
	}
}

func TestSimulate_MalformedJSON(t *testing.T) {
	for _, body := range []string{`{"valorDesejado": `, `{"valorDesejado": 100, "prazo": 2.5}`, `[]`} {
		rec, decoded := post(t, newTestRouter(&fakeSimulationUC{}), body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, []string{e.ErrMalformedJSON.Error()}, messages(decoded), body)
	}
}

func TestSimulate_TermRange(t *testing.T) {
	t.Run("largest 32-bit term is forwarded", func(t *testing.T) {
		uc := &fakeSimulationUC{sim: sampleSimulation()}

		rec, _ := post(t, newTestRouter(uc), `{"valorDesejado": 2000000.00, "prazo": 2147483647}`)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, uc.requests, 1)
		assert.Equal(t, int32(math.MaxInt32), uc.requests[0].Term)
	})

	for _, prazo := range []string{"2147483648", "4294967308", "-2147483649"} {
		t.Run("overflow "+prazo, func(t *testing.T) {
			uc := &fakeSimulationUC{sim: sampleSimulation()}

			rec, body := post(t, newTestRouter(uc), `{"valorDesejado": 2000000.00, "prazo": `+prazo+`}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []string{e.ErrMalformedJSON.Error()}, messages(body))
			assert.Empty(t, uc.requests)
		})
	}
}

func TestSimulate_TrailingZerosAccepted(t *testing.T) {
	uc := &fakeSimulationUC{sim: sampleSimulation()}

	rec, _ := post(t, newTestRouter(uc), `{"valorDesejado": 900.000, "prazo": 3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, uc.requests, 1)
	assert.True(t, uc.requests[0].Principal.Equal(dec("900")))
}

func TestSimulate_UsecaseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"business rule", e.NewBusinessRuleError("valor inferior ao mínimo de R$ %s", "200.00"), http.StatusBadRequest, "valor inferior ao mínimo de R$ 200.00"},
		{"wrapped business rule", e.Wrap("op", e.NewBusinessRuleError("Prazo superior a %d parcelas para o valor desejado", 24)), http.StatusBadRequest, "Prazo superior a 24 parcelas para o valor desejado"},
		{"product not found", e.Wrap("op", e.ErrProductNotFound), http.StatusBadRequest, "Produto não encontrado"},
		{"database down", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, e.ErrInternalServerError.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := post(t, newTestRouter(&fakeSimulationUC{err: tt.err}), `{"valorDesejado": 900, "prazo": 3}`)

			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, []string{tt.want}, messages(body))
		})
	}
}

func TestListProducts(t *testing.T) {
	maxTerm := 24
	maxPrincipal := dec("10000")
	uc := &fakeSimulationUC{products: []domain.Product{
		{ID: 1, Name: "Produto 1", Rate: dec("0.0179"), MaxTerm: &maxTerm, MinPrincipal: dec("200"), MaxPrincipal: &maxPrincipal},
		{ID: 4, Name: "Produto 4", Rate: dec("0.0151"), MinTerm: 96, MinPrincipal: dec("1000000.01")},
	}}

	rec := httptest.NewRecorder()
	newTestRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/produtos", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	s := rec.Body.String()
	assert.Contains(t, s, `"valorMinimo":200.00,"valorMaximo":10000.00`)
	assert.Contains(t, s, `"prazoMinimo":96,"prazoMaximo":null`)
	assert.Contains(t, s, `"valorMaximo":null`)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&fakeSimulationUC{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
