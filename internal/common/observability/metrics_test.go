package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan_RecordsAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	obs := New("foresight-test", WithSpanProcessor(recorder))
	defer obs.Shutdown()

	_, span := obs.StartSpan(context.Background(), "analyze", attribute.String("path", "heuristic"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "analyze", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("path", "heuristic"))
}

func TestStartSpan_NilReceiver(t *testing.T) {
	var obs *Observability
	ctx, span := obs.StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	span.End()
}

func TestRecorders_DoNotPanicWithoutMeter(t *testing.T) {
	obs := &Observability{}
	assert.NotPanics(t, func() {
		obs.RecordJobProcessed(context.Background(), "completed")
		obs.RecordJobDuration(context.Background(), time.Second, "completed")
		obs.Shutdown()
	})
}
