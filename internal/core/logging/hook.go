package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the trigger and poll tick from an event's context onto
// the log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if trigger := GetTrigger(ctx); trigger != "" {
		e.Str("trigger", trigger)
	}

	if tick, ok := GetTick(ctx); ok {
		e.Uint64("tick", tick)
	}
}
