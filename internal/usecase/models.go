package usecase

import "time"

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	SimulationCreated OutboxEventType = "simulacao.realizada"
)

// OutboxEvent - событие, ожидающее отправки в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	Key         string
	Payload     []byte
	Status      OutboxStatus
	Attempts    int
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

// WriteRawMessageReq - готовое сообщение для Kafka. EventID и EventType уходят в заголовки,
// чтобы потребитель мог дедуплицировать и фильтровать без разбора тела.
type WriteRawMessageReq struct {
	EventID   string
	EventType OutboxEventType
	Key       string
	Payload   []byte
}

// MAPPERS

func NewOutboxEvent(eventID string, eventType OutboxEventType, key string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		Key:       key,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(eventID string, eventType OutboxEventType, key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		EventID:   eventID,
		EventType: eventType,
		Key:       key,
		Payload:   payload,
	}
}
