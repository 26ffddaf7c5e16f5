package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/smallbiznis/recibo/internal/observability/logger"
)

func TestProviderStampsRequestID(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp, err := NewProvider(Config{ServiceName: "recibo", Environment: "test"}, sdktrace.WithSpanProcessor(rec))
	require.NoError(t, err)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx := logger.WithRequestID(context.Background(), "req-1")
	_, span := tp.Tracer("test").Start(ctx, "rendering.print")
	End(span, errors.New("boom"))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes(), attribute.String("request_id", "req-1"))
	assert.Equal(t, codes.Error, spans[0].Status().Code)

	var service string
	for _, kv := range spans[0].Resource().Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, "recibo", service)
}

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	require.NoError(t, Setup(lc, Config{}, zap.NewNop()))
	lc.RequireStart().RequireStop()
}
