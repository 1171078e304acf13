package http

import (
	"encoding/json"
	"net/http"

	"github.com/DRSN-tech/credit-simulator/internal/presenter"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
)

const maxRequestSize = 1 << 20

type SimulationHandler struct {
	simulationUsecase usecase.SimulationUC
	logger            logger.Logger
}

func NewSimulationHandler(simulationUsecase usecase.SimulationUC, logger logger.Logger) *SimulationHandler {
	return &SimulationHandler{simulationUsecase: simulationUsecase, logger: logger}
}

// simulate
//
//	@Summary		Simulação
//	@Description	Simula um empréstimo nos sistemas SAC e PRICE para o produto que atende ao valor desejado
//	@Tags			simulacao
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SimulationRequest	true	"Valor desejado e prazo em meses"
//	@Success		200		{object}	presenter.Simulation	"Sucesso na simulação"
//	@Failure		400		{object}	ErrorResponse		"Erro de validação ou regra de negócio"
//	@Failure		500		{object}	ErrorResponse		"Erro interno"
//	@Router			/simulacao [post]
func (h *SimulationHandler) simulate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)

	var body SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.Wrap(err.Error(), e.ErrMalformedJSON))
		return
	}

	req, err := body.Validate()
	if err != nil {
		h.logger.Debugf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	sim, err := h.simulationUsecase.Simulate(r.Context(), req)
	if err != nil {
		code, _ := ToHTTPResponse(err)
		if code == http.StatusInternalServerError {
			h.logger.Errorf(err, "simulation failed")
		} else {
			h.logger.Debugf("simulation rejected: %s", err.Error())
		}
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, presenter.NewSimulation(sim))
}

// listProducts
//
//	@Summary		Produtos
//	@Description	Lista os produtos de crédito com taxa e faixas de prazo e valor
//	@Tags			produtos
//	@Produce		json
//	@Success		200	{array}		presenter.Product
//	@Failure		500	{object}	ErrorResponse	"Erro interno"
//	@Router			/produtos [get]
func (h *SimulationHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.simulationUsecase.ListProducts(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list products failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, presenter.NewProducts(products))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
