package agent

import "context"

type contextKey int

const emitKey contextKey = iota

func ContextWithEmit(ctx context.Context, emit func(Event)) context.Context {
	return context.WithValue(ctx, emitKey, emit)
}

func EmitFromContext(ctx context.Context) func(Event) {
	if v, ok := ctx.Value(emitKey).(func(Event)); ok {
		return v
	}
	return nil
}
