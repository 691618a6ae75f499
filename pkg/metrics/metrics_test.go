package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/stretchr/testify/assert"
)

func TestNoApplication(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, ctx, NewContext(ctx, nil))

	_, ok := applicationFromContext(ctx)
	assert.False(t, ok)

	RecordCount(ctx, "count", 1)
	RecordDuration(ctx, "duration", time.Second)
	RecordEvent(ctx, "event", map[string]interface{}{"key": "value"})

	txnCtx, end := StartTransaction(ctx, nil, "command")
	assert.Equal(t, ctx, txnCtx)
	end()

	tracer := TraceMethodCall(ctx, "pkg", "Method")
	assert.Nil(t, tracer)
	tracer.AddAttribute("key", "value")
	tracer.OnError(errors.New("failure"))
	tracer.End()
}

func TestWithApplication(t *testing.T) {
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName("solotto-test"),
		newrelic.ConfigEnabled(false),
	)
	assert.NoError(t, err)

	ctx, end := StartTransaction(context.Background(), app, "command")
	defer end()

	found, ok := applicationFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, app, found)
	assert.NotNil(t, newrelic.FromContext(ctx))

	tracer := TraceMethodCall(ctx, "pkg", "Method")
	assert.NotNil(t, tracer)
	tracer.AddAttribute("key", "value")
	tracer.OnError(errors.New("failure"))
	tracer.OnError(nil)
	assert.True(t, tracer.failed)
	assert.Equal(t, "Custom/Method/pkg/Method", tracer.metric)
	tracer.End()

	RecordCount(ctx, "count", 1)
	RecordEvent(ctx, "event", map[string]interface{}{"key": "value"})
}
