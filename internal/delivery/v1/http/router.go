package http

import (
	_ "github.com/DRSN-tech/credit-simulator/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/DRSN-tech/credit-simulator/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(simUC usecase.SimulationUC) {
	r.router.Use(middleware.RequestID, middleware.Recoverer)

	r.router.Get("/healthz", healthz)
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		simHandler := NewSimulationHandler(simUC, r.logger)
		registerSimulationRoutes(v1, simHandler)
	})
}

func registerSimulationRoutes(router chi.Router, simHandler *SimulationHandler) {
	router.Post("/simulacao", simHandler.simulate)
	router.Get("/produtos", simHandler.listProducts)
}
