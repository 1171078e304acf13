package pgdb

import (
	"testing"
	"time"

	"github.com/DRSN-tech/credit-simulator/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/credit-simulator/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestOutboxEventRepo_ClaimArgs(t *testing.T) {
	repo := NewOutboxEventRepo(nil, converter.NewOutboxEventConverterImpl(), 90*time.Second)

	args := repo.claimArgs(25)

	assert.Equal(t, []any{string(usecase.Processing), string(usecase.Pending), 25, 90.0}, args)
}

func TestOutboxEventRepo_ClaimArgs_SubSecondThreshold(t *testing.T) {
	repo := NewOutboxEventRepo(nil, converter.NewOutboxEventConverterImpl(), 1500*time.Millisecond)

	assert.InDelta(t, 1.5, repo.claimArgs(1)[3], 1e-9)
}
