package logging

import "context"

type contextKey string

const (
	triggerKey contextKey = "trigger"
	tickKey    contextKey = "tick"
)

// Triggers recorded on refresh and poll contexts.
const (
	TriggerPoll   = "poll"
	TriggerManual = "manual"
	TriggerStart  = "startup"
)

// WithTrigger records what caused the current operation (a poll tick, a
// keypress, the initial load).
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey, trigger)
}

// WithTick records the poll tick sequence number.
func WithTick(ctx context.Context, tick uint64) context.Context {
	return context.WithValue(ctx, tickKey, tick)
}

// GetTrigger retrieves the trigger from the context.
// Returns empty string if not present.
func GetTrigger(ctx context.Context) string {
	if v, ok := ctx.Value(triggerKey).(string); ok {
		return v
	}
	return ""
}

// GetTick retrieves the poll tick from the context.
func GetTick(ctx context.Context) (uint64, bool) {
	v, ok := ctx.Value(tickKey).(uint64)
	return v, ok
}
