package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

const methodDurationMetricPrefix = "Custom/Method"

// TraceMethodCall starts a segment named after the struct/package and method
// within the New Relic transaction carried by ctx. It returns nil when ctx has
// no transaction; every MethodTracer method is safe to call on nil.
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	return &MethodTracer{
		ctx:    ctx,
		txn:    txn,
		seg:    txn.StartSegment(fmt.Sprintf("%s %s", structOrPackageName, methodName)),
		metric: fmt.Sprintf("%s/%s/%s", methodDurationMetricPrefix, structOrPackageName, methodName),
		start:  time.Now(),
	}
}

// MethodTracer collects analytics for a given method call within an existing
// trace.
type MethodTracer struct {
	ctx    context.Context
	txn    *newrelic.Transaction
	seg    *newrelic.Segment
	metric string
	start  time.Time
	failed bool
}

// AddAttribute adds a key-value pair metadata to the method trace
func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t == nil {
		return
	}

	t.seg.AddAttribute(key, value)
}

// OnError notices err on the transaction and marks the segment as failed.
func (t *MethodTracer) OnError(err error) {
	if t == nil || err == nil {
		return
	}

	t.failed = true
	t.seg.AddAttribute("error", err.Error())
	t.txn.NoticeError(err)
}

// End completes the segment and records how long the call took. Failed calls
// are reported under a separate metric name.
func (t *MethodTracer) End() {
	if t == nil {
		return
	}

	t.seg.End()

	metric := t.metric
	if t.failed {
		metric += "/Error"
	}
	RecordDuration(t.ctx, metric, time.Since(t.start))
}
