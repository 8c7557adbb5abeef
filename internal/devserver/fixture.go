// Package devserver serves a small in-memory stand-in for the BizFindr web
// backend: the stats and refresh endpoints plus a chart preview page.
package devserver

import (
	"fmt"
	"sync"
	"time"

	"github.com/bizfindr/bizfindr/internal/core/charts"
)

// Fixture is the mutable state behind the dev server.
type Fixture struct {
	mu          sync.Mutex
	total       int64
	lastUpdated time.Time
	growth      int64
	byType      map[string]int64
	typeOrder   []string
	monthly     []int64
	failStats   bool
	failRefresh bool
	now         func() time.Time
}

// NewFixture seeds a fixture with total registrations. Each successful
// refresh adds growth records.
func NewFixture(total, growth int64) *Fixture {
	f := &Fixture{
		total:     total,
		growth:    growth,
		typeOrder: []string{"LLC", "Corporation", "Sole Proprietorship", "Partnership"},
		now:       time.Now,
	}

	// Split the seed total across business types and recent months so the
	// charts have something to show.
	f.byType = make(map[string]int64, len(f.typeOrder))
	weights := []int64{50, 25, 15, 10}
	for i, name := range f.typeOrder {
		f.byType[name] = total * weights[i] / 100
	}
	f.monthly = make([]int64, 6)
	for i := range f.monthly {
		f.monthly[i] = total / 12 * int64(i+1) / 3
	}
	return f
}

// SetFailing makes the stats and refresh endpoints report errors.
func (f *Fixture) SetFailing(stats, refresh bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStats = stats
	f.failRefresh = refresh
}

// Total returns the current registration count.
func (f *Fixture) Total() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

type statsPayload struct {
	TotalRegistrations int64   `json:"total_registrations"`
	LastUpdated        *string `json:"last_updated"`
}

func (f *Fixture) stats() (statsPayload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failStats {
		return statsPayload{}, false
	}

	p := statsPayload{TotalRegistrations: f.total}
	if !f.lastUpdated.IsZero() {
		ts := f.lastUpdated.UTC().Format("2006-01-02T15:04:05")
		p.LastUpdated = &ts
	}
	return p, true
}

type refreshPayload struct {
	Success bool   `json:"success"`
	Count   int64  `json:"count"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (f *Fixture) refresh() refreshPayload {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failRefresh {
		return refreshPayload{Error: "Upstream data source unavailable"}
	}

	f.lastUpdated = f.now()
	if f.growth == 0 {
		return refreshPayload{Success: true, Message: "No new data available"}
	}

	f.total += f.growth
	f.byType[f.typeOrder[0]] += f.growth
	f.monthly[len(f.monthly)-1] += f.growth

	return refreshPayload{
		Success: true,
		Count:   f.growth,
		Message: fmt.Sprintf("Successfully processed %d records with 0 errors", f.growth),
	}
}

// BusinessTypes returns chart data for the registrations-by-type doughnut.
func (f *Fixture) BusinessTypes() charts.Data {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := make([]float64, 0, len(f.typeOrder))
	for _, name := range f.typeOrder {
		values = append(values, float64(f.byType[name]))
	}
	return charts.Data{
		Labels: append([]string(nil), f.typeOrder...),
		Datasets: []charts.Dataset{{
			Label:           "Businesses",
			Data:            values,
			BackgroundColor: charts.Colors{"#4e73df", "#1cc88a", "#36b9cc", "#f6c23e"},
		}},
	}
}

// RegistrationTrends returns chart data for the monthly line chart, ending
// with the current month.
func (f *Fixture) RegistrationTrends() charts.Data {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	labels := make([]string, len(f.monthly))
	values := make([]float64, len(f.monthly))
	for i := range f.monthly {
		month := now.AddDate(0, i-len(f.monthly)+1, 0)
		labels[i] = month.Format("Jan 2006")
		values[i] = float64(f.monthly[i])
	}
	return charts.Data{
		Labels: labels,
		Datasets: []charts.Dataset{{
			Label:           "Registrations",
			Data:            values,
			BackgroundColor: charts.Colors{"#4e73df"},
		}},
	}
}
