package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizfindr/bizfindr/internal/core/charts"
	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/core/page"
	"github.com/bizfindr/bizfindr/internal/core/stats"
	"github.com/bizfindr/bizfindr/internal/core/widgets"
	"github.com/bizfindr/bizfindr/pkg/tuitest"
)

type stubRefresher struct {
	result stats.RefreshResult
	err    error
	calls  int
}

func (s *stubRefresher) Refresh(context.Context) (stats.RefreshResult, error) {
	s.calls++
	return s.result, s.err
}

type stubHistory struct {
	items []notify.Notification
	err   error
}

func (s *stubHistory) Save(context.Context, notify.Notification) (int64, error) { return 1, nil }
func (s *stubHistory) Clear(context.Context) error                              { return nil }

func (s *stubHistory) List(context.Context) ([]notify.Notification, error) {
	return s.items, s.err
}

func (s *stubHistory) Count(context.Context) (int64, error) {
	return int64(len(s.items)), nil
}

type harness struct {
	doc     *page.Document
	center  *notify.Center
	refresh *stubRefresher
	opened  []string
	openErr error
	opts    Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		doc:     page.NewDashboard(),
		refresh: &stubRefresher{result: stats.RefreshResult{Success: true, Message: "Successfully processed 3 records with 0 errors"}},
	}
	h.center = notify.NewCenter(h.doc, nil)
	h.center.SetDefaultDismiss(0)

	h.opts = Options{
		Doc:       h.doc,
		Center:    h.center,
		Refresh:   widgets.NewRefreshButton(h.doc, h.refresh, h.center, nil, 0),
		Tabs:      widgets.NewTabMemory(h.doc, nil),
		Search:    widgets.NewSearchForm(h.doc, "http://localhost:5000", h.center),
		Forms:     widgets.NewFormLoading(h.doc, time.Hour),
		BackToTop: widgets.NewBackToTop(h.doc, widgets.DefaultBackToTopThreshold),
		Open: func(_ context.Context, url string) error {
			h.opened = append(h.opened, url)
			return h.openErr
		},
		Now: func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
	return h
}

func (h *harness) model() Model {
	m := New(context.Background(), h.opts)
	updated, _ := m.Update(tuitest.WindowSize(100, 30))
	return updated.(Model)
}

// send applies msg and runs any returned command once, feeding its result
// back into the model. Commands that block on document or buffer signals are
// never returned for the messages used here.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	if follow := cmd(); follow != nil {
		if _, ok := follow.(tea.QuitMsg); ok {
			return m
		}
		updated, _ = m.Update(follow)
		m = updated.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, k := range tuitest.TypeString(s) {
		updated, _ := m.Update(k)
		m = updated.(Model)
	}
	return m
}

func view(m Model) string {
	return tuitest.StripANSI(m.render())
}

func TestModel_ShowsStat(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	assert.Contains(t, view(m), "loading...")

	h.doc.SetText(h.doc.ByID(page.IDStatsCount), "1,234 records")
	updated, _ := m.Update(docChangedMsg{})
	m = updated.(Model)

	out := view(m)
	assert.Contains(t, out, "1,234 records")
	assert.Contains(t, out, "Total registrations")
}

func TestModel_DismissKeys(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	h.center.Infof("first")
	h.center.Warnf("second")
	out := view(m)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")

	m = send(t, m, tuitest.KeyText('x'))
	require.Len(t, h.center.Active(), 1)
	assert.Equal(t, "first", h.center.Active()[0].Notification().Message)

	h.center.Errorf("third")
	m = send(t, m, tuitest.KeyText('X'))
	assert.Empty(t, h.center.Active())
	assert.NotContains(t, view(m), "third")
}

func TestModel_RefreshKey(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	send(t, m, tuitest.KeyText('r'))

	assert.Equal(t, 1, h.refresh.calls)
	active := h.center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.SeveritySuccess, active[0].Notification().Severity)
	assert.False(t, h.opts.Refresh.Busy())
}

func TestModel_RefreshKeyIgnoredWhileBusy(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	h.doc.SetDisabled(h.doc.ByID(page.IDRefreshData), true)
	_, cmd := m.Update(tuitest.KeyText('r'))

	assert.Nil(t, cmd)
	assert.Zero(t, h.refresh.calls)
}

func TestModel_TabShowsHistory(t *testing.T) {
	h := newHarness(t)
	now := h.opts.Now()
	h.opts.History = &stubHistory{items: []notify.Notification{
		{Severity: notify.SeverityWarning, Message: "older warning", CreatedAt: now.Add(-2 * time.Hour)},
	}}
	m := h.model()

	m = send(t, m, m.loadHistory()())
	m = send(t, m, tuitest.KeyTab())

	assert.Equal(t, page.TabNotifications, h.opts.Tabs.Active())
	out := view(m)
	assert.Contains(t, out, "older warning")
	assert.Contains(t, out, "2 hours ago")

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, page.TabOverview, h.opts.Tabs.Active())
	assert.Contains(t, view(m), "Total registrations")
}

func TestModel_HistoryError(t *testing.T) {
	h := newHarness(t)
	h.opts.History = &stubHistory{err: errors.New("disk full")}
	m := h.model()

	m = send(t, m, m.loadHistory()())
	m = send(t, m, tuitest.KeyTab())

	assert.Contains(t, view(m), "failed to load notifications: disk full")
}

func TestModel_DrainPrependsHistory(t *testing.T) {
	h := newHarness(t)
	h.opts.Buffer = NewNotificationBuffer()
	h.center.Subscribe(h.opts.Buffer.Push)
	m := h.model()
	m = send(t, m, tuitest.KeyTab())

	assert.Contains(t, view(m), "No notifications")

	h.center.Infof("one")
	h.center.Successf("two")
	updated, _ := m.Update(drainNotificationsMsg{})
	m = updated.(Model)

	require.Len(t, m.history, 2)
	assert.Equal(t, "two", m.history[0].Message)
	assert.Equal(t, "one", m.history[1].Message)
	assert.Contains(t, view(m), "two")
}

func TestModel_EmptySearchWarns(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	m = send(t, m, tuitest.KeyText('/'))
	require.True(t, m.searching)
	m = send(t, m, tuitest.KeyEnter())

	assert.True(t, m.searching, "stays in search mode")
	assert.Empty(t, h.opened)
	active := h.center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, widgets.EmptySearchError, active[0].Notification().Message)
	assert.Equal(t, notify.SeverityWarning, active[0].Notification().Severity)
}

func TestModel_SearchOpensURL(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	m = send(t, m, tuitest.KeyText('/'))
	m = typeText(t, m, "bakery")
	m = send(t, m, tuitest.KeyEnter())

	assert.False(t, m.searching)
	require.Len(t, h.opened, 1)
	assert.True(t, strings.HasPrefix(h.opened[0], "http://localhost:5000/search?"))
	assert.Contains(t, h.opened[0], "q=bakery")
	assert.Equal(t, h.opened[0], m.lastOpened)
}

func TestModel_SearchEscapeCancels(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	m = send(t, m, tuitest.KeyText('/'))
	m = send(t, m, tuitest.KeyEsc())

	assert.False(t, m.searching)
	assert.Contains(t, view(m), "press / to search")
}

func TestModel_OpenFailureShowsError(t *testing.T) {
	h := newHarness(t)
	h.openErr = errors.New("no browser")
	m := h.model()

	m = send(t, m, tuitest.KeyText('/'))
	m = typeText(t, m, "cafe")
	send(t, m, tuitest.KeyEnter())

	active := h.center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.SeverityDanger, active[0].Notification().Severity)
	assert.True(t, strings.HasPrefix(active[0].Notification().Message, "Error: could not open "))
}

func TestModel_ClearKey(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	form := h.opts.Search.Form()
	h.opts.Search.SetQuery(form, "bakery")

	m = send(t, m, tuitest.KeyText('c'))

	require.Len(t, h.opened, 1)
	assert.Equal(t, "http://localhost:5000/search?q=", h.opened[0])
	assert.Empty(t, h.doc.Value(h.doc.QueryIn(form, `input[name="q"]`)))
	assert.Empty(t, m.input.Value())
}

func TestModel_BackToTop(t *testing.T) {
	h := newHarness(t)

	d := charts.Data{Datasets: []charts.Dataset{{Label: "Businesses"}}}
	for i := range 60 {
		d.Labels = append(d.Labels, fmt.Sprintf("Type %d", i))
		d.Datasets[0].Data = append(d.Datasets[0].Data, float64(i))
	}
	require.NoError(t, charts.Attach(h.doc, page.IDBusinessTypes, d))

	m := h.model()
	for range 20 {
		m = send(t, m, tuitest.KeyDown())
	}

	require.Greater(t, m.viewport.YOffset()*linePixels, widgets.DefaultBackToTopThreshold)
	assert.True(t, h.opts.BackToTop.Visible())
	assert.Contains(t, view(m), "top (g)")

	m = send(t, m, tuitest.KeyText('g'))
	assert.Zero(t, m.viewport.YOffset())
	assert.False(t, h.opts.BackToTop.Visible())
}

func TestModel_QuitKey(t *testing.T) {
	h := newHarness(t)
	m := h.model()

	_, cmd := m.Update(tuitest.KeyText('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
