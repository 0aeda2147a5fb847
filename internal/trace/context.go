package trace

import "context"

type ctxKey struct{}

// FromContext extracts the Tracer from context, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext identifies the innermost open span.
type SpanContext struct {
	SpanID uint64
	Depth  int
}

type spanCtxKey struct{}

// CurrentSpan returns the active span context; zero outside any span.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanCtxKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// Start opens a span under the current one and returns a context carrying it.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	parent := CurrentSpan(ctx)
	sp := begin(FromContext(ctx), scope, name, parent.SpanID, parent.Depth)
	if sp.id == 0 {
		return ctx, sp
	}
	return WithSpanContext(ctx, SpanContext{SpanID: sp.id, Depth: parent.Depth + 1}), sp
}

// Point emits an instant event under the current span.
func Point(ctx context.Context, scope Scope, name, detail string) {
	emitInstant(ctx, KindPoint, scope, name, detail)
}

// Error emits a failure event; it passes every enabled level.
func Error(ctx context.Context, scope Scope, name string, err error) {
	if err == nil {
		return
	}
	emitInstant(ctx, KindError, scope, name, err.Error())
}

func emitInstant(ctx context.Context, kind Kind, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() {
		return
	}
	parent := CurrentSpan(ctx)
	t.Emit(&Event{
		Time:     now(),
		Kind:     kind,
		Scope:    scope,
		ParentID: parent.SpanID,
		GID:      getGoroutineID(),
		Depth:    parent.Depth,
		Name:     name,
		Detail:   detail,
	})
}
