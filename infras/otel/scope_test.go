package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic/infras/otel"
	"clinic/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanRecorder(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	_, span := provider.Tracer("test").Start(context.Background(), "booking.Book")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	return spans[0]
}

func TestScope_ClientFailureIsAnEvent(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(failure.SlotTakenError)
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
	require.Len(t, span.Events(), 1)
	assert.Equal(t, "failure", span.Events()[0].Name)
	assert.Contains(t, span.Events()[0].Attributes, attribute.Int("failure.code", 409))
}

func TestScope_ServerErrorMarksSpan(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(errors.New("connection reset"))
	})

	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "connection reset", span.Status().Description)
}

func TestScope_UnavailableMarksSpan(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceError(failure.ServiceUnavailable("retry later"))
	})

	assert.Equal(t, codes.Error, span.Status().Code)
}

func TestScope_NilErrorIsIgnored(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.TraceIfError(nil)
	})

	assert.Equal(t, codes.Unset, span.Status().Code)
	assert.Empty(t, span.Events())
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttributes(map[string]any{
			"booking.date":  "2025-06-10",
			"slots":         12,
			"held":          true,
			"lock.wait":     150 * time.Millisecond,
			"booking.roles": []string{"admin"},
		})
	})

	attrs := span.Attributes()
	assert.Contains(t, attrs, attribute.String("booking.date", "2025-06-10"))
	assert.Contains(t, attrs, attribute.Int("slots", 12))
	assert.Contains(t, attrs, attribute.Bool("held", true))
	assert.Contains(t, attrs, attribute.Int64("lock.wait.ms", 150))
	assert.Contains(t, attrs, attribute.StringSlice("booking.roles", []string{"admin"}))
}
