package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

type newRelicContextKey struct{}

// NewRelicContextKey is the context key holding the *newrelic.Application that
// custom metrics and events are reported to.
var NewRelicContextKey = newRelicContextKey{}

// NewContext returns a copy of ctx that reports to app. A nil app leaves ctx
// untouched, so every recorder in this package stays a no-op.
func NewContext(ctx context.Context, app *newrelic.Application) context.Context {
	if app == nil {
		return ctx
	}
	return context.WithValue(ctx, NewRelicContextKey, app)
}

// StartTransaction starts a New Relic transaction for a unit of work, such as a
// single CLI command, and returns a context carrying it. The returned func
// ends the transaction.
func StartTransaction(ctx context.Context, app *newrelic.Application, name string) (context.Context, func()) {
	if app == nil {
		return ctx, func() {}
	}

	txn := app.StartTransaction(name)
	ctx = newrelic.NewContext(NewContext(ctx, app), txn)
	return ctx, txn.End
}

func applicationFromContext(ctx context.Context) (*newrelic.Application, bool) {
	app, ok := ctx.Value(NewRelicContextKey).(*newrelic.Application)
	return app, ok && app != nil
}
