// Package sweep runs periodic housekeeping against the local database.
package sweep

import (
	"context"
	"time"

	"github.com/bizfindr/bizfindr/internal/core/logging"
)

// Func is a single housekeeping pass, such as KVStore.SweepExpired.
type Func func(ctx context.Context) error

// Start runs fn every interval until ctx is cancelled. Failures are logged and
// the loop keeps going. It blocks, so callers usually run it in a goroutine.
func Start(ctx context.Context, name string, fn Func, interval time.Duration) {
	logger := logging.Component("sweep").With().Str("task", name).Logger()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				logger.Debug().Err(err).Msg("sweep failed")
			}
		}
	}
}
