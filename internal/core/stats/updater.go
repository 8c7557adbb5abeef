package stats

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizfindr/bizfindr/internal/core/logging"
	"github.com/bizfindr/bizfindr/internal/core/page"
)

// DefaultPeriod is the poll interval for the navbar stat.
const DefaultPeriod = 5 * time.Minute

// Updater keeps the #stats-count element in sync with the server.
type Updater struct {
	source Source
	doc    *page.Document
	state  *State
	format Formatter
	period time.Duration
	log    zerolog.Logger

	mu       sync.Mutex
	onUpdate []func(int64)
}

// NewUpdater wires an updater. A zero period falls back to DefaultPeriod.
func NewUpdater(source Source, doc *page.Document, state *State, format Formatter, period time.Duration) *Updater {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Updater{
		source: source,
		doc:    doc,
		state:  state,
		format: format,
		period: period,
		log:    logging.Component("stats").Hook(logging.ContextHook{}),
	}
}

// OnUpdate registers fn to run after each successful refresh.
func (u *Updater) OnUpdate(fn func(int64)) {
	u.mu.Lock()
	u.onUpdate = append(u.onUpdate, fn)
	u.mu.Unlock()
}

// Period returns the poll interval.
func (u *Updater) Period() time.Duration { return u.period }

// Refresh fetches the stats once and writes them into #stats-count. When the
// element is absent nothing is fetched. Failures are logged and leave the
// current text in place.
func (u *Updater) Refresh(ctx context.Context) {
	el := u.doc.ByID(page.IDStatsCount)
	if el == nil {
		return
	}

	stats, err := u.source.Stats(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		u.log.Warn().Ctx(ctx).Err(err).Msg("error fetching stats")
		return
	}

	u.doc.SetText(el, u.format.Format(stats.TotalRegistrations))
	u.state.record(stats.TotalRegistrations, stats.LastUpdated)

	u.log.Debug().Ctx(ctx).Int64("total", stats.TotalRegistrations).Msg("stats updated")

	u.mu.Lock()
	fns := u.onUpdate
	u.mu.Unlock()
	for _, fn := range fns {
		fn(stats.TotalRegistrations)
	}
}

// Start refreshes immediately and then once per period until the returned
// handle is stopped or ctx is cancelled. Each tick fetches independently;
// a slow response may land after a newer one. Starting again stops the
// previous loop.
func (u *Updater) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	if prev := u.state.swapHandle(h); prev != nil {
		prev.Stop()
	}

	var tick atomic.Uint64
	fire := func() {
		n := tick.Add(1)
		tickCtx := logging.WithTick(logging.WithTrigger(ctx, logging.TriggerPoll), n)
		h.inflight.Add(1)
		go func() {
			defer h.inflight.Done()
			u.Refresh(tickCtx)
		}()
	}

	go func() {
		defer close(h.done)
		defer u.state.clearHandle(h)

		ticker := time.NewTicker(u.period)
		defer ticker.Stop()

		fire()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fire()
			}
		}
	}()

	return h
}

// Handle controls a running poll loop.
type Handle struct {
	cancel   context.CancelFunc
	done     chan struct{}
	inflight sync.WaitGroup
	once     sync.Once
}

// Stop cancels the loop and waits for it and any in-flight fetches to return.
// It is safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(func() {
		h.cancel()
		<-h.done
		h.inflight.Wait()
	})
}

// Done is closed when the loop has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }
