// Package trace logs pointer lifecycle events through zap.
//
// Attach a tracer while debugging a lifetime problem:
//
//	t := trace.New(logger)
//	ptr.Subscribe(t)
//	defer ptr.Unsubscribe(t)
//
// Every control-block transition is logged at debug level with the block's
// identity and counter values; destruction and block teardown log at info
// level so the interesting transitions stand out.
package trace

import (
	"go.uber.org/zap"

	"github.com/wippyai/refptr/ptr"
)

// Tracer implements ptr.Observer, forwarding lifecycle events to a logger.
type Tracer struct {
	log *zap.Logger
}

// New creates a tracer logging to l. A nil l uses the package logger.
func New(l *zap.Logger) *Tracer {
	if l == nil {
		l = Logger()
	}
	return &Tracer{log: l}
}

// OnPointerEvent implements ptr.Observer.
func (t *Tracer) OnPointerEvent(e ptr.Event) {
	fields := []zap.Field{
		zap.String("block", e.Block.String()),
		zap.Uint("shared", e.Shared),
		zap.Uint("weak", e.Weak),
	}
	switch e.Type {
	case ptr.EventResourceDestroyed, ptr.EventBlockFreed:
		t.log.Info(e.Type.String(), fields...)
	default:
		t.log.Debug(e.Type.String(), fields...)
	}
}
