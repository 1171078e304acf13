package infrastructure

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/presenter"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/google/uuid"
)

// SimulationEvent - конверт события, публикуемого после каждой успешной симуляции.
// Simulacao совпадает с телом ответа POST /simulacao.
type SimulationEvent struct {
	EventID        string               `json:"eventId"`
	EventType      string               `json:"eventType"`
	EventTimestamp time.Time            `json:"eventTimestamp"`
	Simulacao      presenter.Simulation `json:"simulacao"`
}

func NewSimulationEvent(sim *domain.Simulation) *SimulationEvent {
	return &SimulationEvent{
		EventID:        uuid.NewString(),
		EventType:      string(usecase.SimulationCreated),
		EventTimestamp: time.Now().UTC(),
		Simulacao:      presenter.NewSimulation(sim),
	}
}

// Encode сериализует событие в JSON.
func (ev *SimulationEvent) Encode() ([]byte, error) {
	return json.Marshal(ev)
}

// Key - ключ партиционирования: код продукта.
func (ev *SimulationEvent) Key() string {
	return strconv.FormatInt(ev.Simulacao.CodigoProduto, 10)
}
