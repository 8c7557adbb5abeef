package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []int
	at    []time.Time
}

func (r *recorder) record(v int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, v)
	r.at = append(r.at, time.Now())
}

func (r *recorder) snapshot() ([]int, []time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.calls...), append([]time.Time(nil), r.at...)
}

func TestDebouncer_BurstCollapsesToLastCall(t *testing.T) {
	const wait = 40 * time.Millisecond
	rec := &recorder{}
	d := New(wait, rec.record)

	for i := 1; i <= 5; i++ {
		d.Call(i)
	}
	lastCall := time.Now()

	assert.Eventually(t, func() bool {
		calls, _ := rec.snapshot()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	// Give a stray timer a chance to fire a second time.
	time.Sleep(2 * wait)

	calls, at := rec.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, 5, calls[0])
	assert.GreaterOrEqual(t, at[0].Sub(lastCall), wait)
}

func TestDebouncer_NeverCallsSynchronously(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Call(1)

	calls, _ := rec.snapshot()
	assert.Empty(t, calls)
}

func TestDebouncer_SeparatedCallsInvokeTwice(t *testing.T) {
	const wait = 20 * time.Millisecond
	rec := &recorder{}
	call := Func(wait, rec.record)

	call(1)
	assert.Eventually(t, func() bool {
		calls, _ := rec.snapshot()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)

	call(2)
	assert.Eventually(t, func() bool {
		calls, _ := rec.snapshot()
		return len(calls) == 2
	}, time.Second, 5*time.Millisecond)

	calls, _ := rec.snapshot()
	assert.Equal(t, []int{1, 2}, calls)
}

func TestDebouncer_Cancel(t *testing.T) {
	const wait = 20 * time.Millisecond
	rec := &recorder{}
	d := New(wait, rec.record)

	d.Call(1)
	d.Cancel()
	time.Sleep(3 * wait)

	calls, _ := rec.snapshot()
	assert.Empty(t, calls)

	// Still usable after a cancel.
	d.Call(7)
	assert.Eventually(t, func() bool {
		calls, _ := rec.snapshot()
		return len(calls) == 1 && calls[0] == 7
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_ConcurrentCallers(t *testing.T) {
	rec := &recorder{}
	d := New(30*time.Millisecond, rec.record)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d.Call(i)
		}(i)
	}
	wg.Wait()

	assert.Eventually(t, func() bool {
		calls, _ := rec.snapshot()
		return len(calls) == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	calls, _ := rec.snapshot()
	assert.Len(t, calls, 1)
}
