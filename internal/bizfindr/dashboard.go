package bizfindr

import (
	"context"
	"time"

	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/core/page"
	"github.com/bizfindr/bizfindr/internal/core/stats"
	"github.com/bizfindr/bizfindr/internal/core/widgets"
)

// draftWait is the pause in typing after which the search draft is saved.
const draftWait = 400 * time.Millisecond

// Dashboard is one dashboard page with every handler bound to it.
type Dashboard struct {
	Doc       *page.Document
	Center    *notify.Center
	State     *stats.State
	Updater   *stats.Updater
	Refresh   *widgets.RefreshButton
	Tabs      *widgets.TabMemory
	Search    *widgets.SearchForm
	Forms     *widgets.FormLoading
	Draft     *widgets.SearchDraft
	BackToTop *widgets.BackToTop
}

// NewDashboard builds the dashboard page and wires its handlers to the app.
// A successful manual refresh re-reads the stats after the configured reload
// delay. ctx bounds those follow-up fetches.
func (a *App) NewDashboard(ctx context.Context) *Dashboard {
	cfg := a.Config
	doc := page.NewDashboard()

	center := notify.NewCenter(doc, a.History)
	center.SetDefaultDismiss(cfg.AutoDismiss())

	state := stats.NewState()
	updater := stats.NewUpdater(a.Client, doc, state, a.Format, cfg.Stats.Interval)

	reload := func() { updater.Refresh(ctx) }

	widgets.ClampDateInputs(doc, time.Now())

	return &Dashboard{
		Doc:       doc,
		Center:    center,
		State:     state,
		Updater:   updater,
		Refresh:   widgets.NewRefreshButton(doc, a.Client, center, reload, cfg.Refresh.ReloadDelay),
		Tabs:      widgets.NewTabMemory(doc, a.KV),
		Search:    widgets.NewSearchForm(doc, cfg.Server.BaseURL, center),
		Forms:     widgets.NewFormLoading(doc, cfg.Forms.RevertAfter),
		Draft:     widgets.NewSearchDraft(a.KV, draftWait),
		BackToTop: widgets.NewBackToTop(doc, cfg.Page.BackToTopThreshold),
	}
}

// Start begins polling the stats endpoint.
func (d *Dashboard) Start(ctx context.Context) *stats.Handle {
	return d.Updater.Start(ctx)
}
