package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/pkg/logger"
)

func TestInit(t *testing.T) {
	ctx := t.Context()

	instruments, shutdown, err := Init(ctx, Config{ServiceName: "marketplace-test", Environment: "test"}, logger.Discard())
	require.NoError(t, err)
	require.NotNil(t, instruments)

	_, span := instruments.Tracer("test").Start(ctx, "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	counter, err := instruments.Meter("test").Int64Counter("test.calls")
	require.NoError(t, err)
	counter.Add(ctx, 1)

	assert.NoError(t, shutdown(ctx))
}

func TestInstruments_NilFallbacks(t *testing.T) {
	var instruments *Instruments

	assert.NotNil(t, instruments.Tracer("test"))

	counter, err := instruments.Meter("test").Int64Counter("test.calls")
	require.NoError(t, err)
	assert.NotPanics(t, func() { counter.Add(t.Context(), 1) })
}
