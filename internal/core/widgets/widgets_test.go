package widgets

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/core/page"
	"github.com/bizfindr/bizfindr/internal/core/stats"
)

type fakeRefresher struct {
	result stats.RefreshResult
	err    error
	seen   func()
}

func (f *fakeRefresher) Refresh(context.Context) (stats.RefreshResult, error) {
	if f.seen != nil {
		f.seen()
	}
	return f.result, f.err
}

func newPage(t *testing.T) (*page.Document, *notify.Center) {
	t.Helper()
	doc := page.NewDashboard()
	return doc, notify.NewCenter(doc, nil)
}

func TestRefreshButton_Success(t *testing.T) {
	doc, center := newPage(t)
	btn := doc.ByID(page.IDRefreshData)

	var reloaded atomic.Bool
	client := &fakeRefresher{
		result: stats.RefreshResult{Success: true, Message: "42 records updated"},
		seen: func() {
			assert.True(t, doc.Disabled(btn))
			assert.Equal(t, RefreshingLabel, doc.OwnText(btn))
		},
	}

	rb := NewRefreshButton(doc, client, center, func() { reloaded.Store(true) }, 10*time.Millisecond)
	b := rb.Click(context.Background())

	require.NotNil(t, b)
	assert.Equal(t, notify.SeveritySuccess, b.Notification().Severity)
	assert.Equal(t, "Data refreshed successfully! 42 records updated", b.Notification().Message)

	assert.False(t, doc.Disabled(btn))
	assert.Equal(t, "Refresh Data", doc.OwnText(btn))
	assert.False(t, rb.Busy())

	assert.Eventually(t, reloaded.Load, time.Second, 5*time.Millisecond)
}

func TestRefreshButton_Failures(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeRefresher
		want   string
	}{
		{
			name:   "reported error",
			client: &fakeRefresher{result: stats.RefreshResult{Success: false, Error: "upstream timeout"}},
			want:   "Error: upstream timeout",
		},
		{
			name:   "reported failure without detail",
			client: &fakeRefresher{result: stats.RefreshResult{Success: false}},
			want:   "Error: Failed to refresh data",
		},
		{
			name:   "transport error",
			client: &fakeRefresher{err: errors.New("connection refused")},
			want:   "Error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, center := newPage(t)

			var reloaded atomic.Bool
			rb := NewRefreshButton(doc, tt.client, center, func() { reloaded.Store(true) }, time.Millisecond)

			b := rb.Click(context.Background())
			require.NotNil(t, b)
			assert.Equal(t, notify.SeverityDanger, b.Notification().Severity)
			assert.Equal(t, tt.want, b.Notification().Message)
			assert.False(t, doc.Disabled(doc.ByID(page.IDRefreshData)))

			time.Sleep(20 * time.Millisecond)
			assert.False(t, reloaded.Load(), "no reload after a failure")
		})
	}
}

func TestRefreshButton_IgnoredWhileBusyOrMissing(t *testing.T) {
	doc, center := newPage(t)
	doc.SetDisabled(doc.ByID(page.IDRefreshData), true)

	rb := NewRefreshButton(doc, &fakeRefresher{}, center, nil, 0)
	assert.Nil(t, rb.Click(context.Background()))

	empty := page.NewDocument()
	rb = NewRefreshButton(empty, &fakeRefresher{}, notify.NewCenter(empty, nil), nil, 0)
	assert.Nil(t, rb.Click(context.Background()))
}

func TestFormLoading_Submit(t *testing.T) {
	doc, _ := newPage(t)
	form := doc.ByID(page.IDSearchForm)
	btn := doc.QueryIn(form, `button[type="submit"]`)

	fl := NewFormLoading(doc, 20*time.Millisecond)
	require.True(t, fl.Submit(form))

	assert.True(t, doc.Disabled(btn))
	assert.Equal(t, ProcessingLabel, doc.OwnText(btn))

	assert.Eventually(t, func() bool {
		return !doc.Disabled(btn) && doc.OwnText(btn) == "Search"
	}, time.Second, 5*time.Millisecond)
}

func TestFormLoading_Skips(t *testing.T) {
	doc, _ := newPage(t)
	fl := NewFormLoading(doc, time.Millisecond)

	// The delete form's button opts out.
	assert.False(t, fl.Submit(doc.ByID(page.IDDeleteForm)))

	noJS := page.New("form", page.WithClass("no-js"), page.WithChildren(
		page.New("button", page.WithAttr("type", "submit")),
	))
	doc.Append(doc.Root(), noJS)
	assert.False(t, fl.Submit(noJS))

	bare := page.New("form")
	doc.Append(doc.Root(), bare)
	assert.False(t, fl.Submit(bare))
	assert.False(t, fl.Submit(nil))
}

func TestClampDateInputs(t *testing.T) {
	doc, _ := newPage(t)
	now := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, ClampDateInputs(doc, now))

	in := doc.Query(`input[type="date"]`)
	maxDate, ok := doc.Attr(in, "max")
	require.True(t, ok)
	assert.Equal(t, "2024-03-09", maxDate)
}

func TestConfirmDelete(t *testing.T) {
	doc, _ := newPage(t)
	form := doc.ByID(page.IDDeleteForm)

	trigger := DeleteTrigger("105", "Acme Bakery")
	doc.Append(doc.Query("main"), trigger)

	require.True(t, ConfirmDelete(doc, trigger))

	action, _ := doc.Attr(form, page.AttrAction)
	assert.Equal(t, "/businesses/105/delete", action)
	assert.Equal(t, "Acme Bakery", doc.Text(doc.ByID(page.IDDeleteItemName)))
}

func TestConfirmDelete_DefaultName(t *testing.T) {
	doc, _ := newPage(t)
	trigger := DeleteTrigger("7", "")
	doc.Append(doc.Query("main"), trigger)

	require.True(t, ConfirmDelete(doc, trigger))
	assert.Equal(t, "this item", doc.Text(doc.ByID(page.IDDeleteItemName)))
}

func TestConfirmDelete_NoForm(t *testing.T) {
	doc := page.NewDocument()
	assert.False(t, ConfirmDelete(doc, DeleteTrigger("1", "x")))
}

func TestSearchForm_EmptyShowsWarning(t *testing.T) {
	doc, center := newPage(t)
	sf := NewSearchForm(doc, "http://localhost:5000", center)
	form := sf.Form()

	sf.SetQuery(form, "   ")
	_, ok := sf.Submit(form)
	require.False(t, ok)

	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.SeverityWarning, active[0].Notification().Severity)
	assert.Equal(t, EmptySearchError, active[0].Notification().Message)

	btn := doc.QueryIn(form, `button[type="submit"]`)
	assert.False(t, doc.Disabled(btn))
}

func TestSearchForm_QueryBuildsURL(t *testing.T) {
	doc, center := newPage(t)
	sf := NewSearchForm(doc, "http://localhost:5000/", center)
	form := sf.Form()

	sf.SetQuery(form, "  corner bakery ")
	doc.SetValue(doc.QueryIn(form, `select[name="status"]`), "active")

	got, ok := sf.Submit(form)
	require.True(t, ok)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "localhost:5000", u.Host)
	assert.Equal(t, "/search", u.Path)
	assert.Equal(t, "corner bakery", u.Query().Get("q"))
	assert.Equal(t, "active", u.Query().Get("status"))
	assert.False(t, u.Query().Has("business_type"))

	btn := doc.QueryIn(form, `button[type="submit"]`)
	assert.True(t, doc.Disabled(btn))
	assert.Equal(t, SearchingLabel, doc.OwnText(btn))
	assert.Empty(t, center.Active())
}

func TestSearchForm_FilterOnly(t *testing.T) {
	doc, center := newPage(t)
	sf := NewSearchForm(doc, "", center)
	form := sf.Form()

	doc.SetValue(doc.QueryIn(form, `select[name="business_type"]`), "LLC")

	got, ok := sf.Submit(form)
	require.True(t, ok)
	assert.Equal(t, "/search?business_type=LLC&q=", got)
}

func TestSearchForm_ClearFilters(t *testing.T) {
	doc, center := newPage(t)
	sf := NewSearchForm(doc, "", center)
	form := sf.Form()

	sf.SetQuery(form, "bakery")
	doc.SetValue(doc.QueryIn(form, `select[name="status"]`), "active")

	got, ok := sf.ClearFilters(doc.ByID(page.IDClearFilters))
	require.True(t, ok)
	assert.Equal(t, "/search?q=", got)
	assert.Empty(t, doc.Value(doc.QueryIn(form, `select[name="status"]`)))
	assert.Empty(t, center.Active(), "clearing bypasses validation")

	_, ok = sf.ClearFilters(doc.ByID(page.IDStatsCount))
	assert.False(t, ok)
}

func TestBackToTop(t *testing.T) {
	doc, _ := newPage(t)
	b := NewBackToTop(doc, DefaultBackToTopThreshold)

	assert.False(t, b.Scroll(300))
	assert.False(t, b.Visible())

	assert.True(t, b.Scroll(301))
	assert.True(t, b.Visible())

	assert.Equal(t, 0, b.Click())
	assert.False(t, b.Visible())

	assert.False(t, NewBackToTop(page.NewDocument(), 10).Scroll(100))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "N/A"},
		{in: "yesterday", want: "N/A"},
		{in: "2024-01-05T14:30:00Z", want: "Jan 5, 2024, 02:30 PM"},
		{in: "2024-01-05T09:05:00.123456", want: "Jan 5, 2024, 09:05 AM"},
		{in: "2024-12-25", want: "Dec 25, 2024, 12:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "1 hour ago", FormatRelative("2024-01-05T14:00:00Z", now))
	assert.Empty(t, FormatRelative("", now))
}
