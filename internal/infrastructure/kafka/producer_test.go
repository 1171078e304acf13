package kafka

import (
	"testing"

	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestNewMessage(t *testing.T) {
	req := usecase.NewWriteRawMessageReq("5f1c", usecase.SimulationCreated, "2", []byte(`{"simulacao":{}}`))

	msg := newMessage(req)

	assert.Equal(t, []byte("2"), msg.Key)
	assert.JSONEq(t, `{"simulacao":{}}`, string(msg.Value))

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, map[string]string{
		headerContentType: "application/json",
		headerEventID:     "5f1c",
		headerEventType:   "simulacao.realizada",
	}, headers)
}
