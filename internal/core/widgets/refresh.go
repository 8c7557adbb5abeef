package widgets

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizfindr/bizfindr/internal/core/logging"
	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/core/page"
)

// Refresh button texts and timing.
const (
	RefreshingLabel    = "Refreshing..."
	DefaultReloadDelay = 1500 * time.Millisecond
)

// RefreshButton handles clicks on #refresh-data.
type RefreshButton struct {
	doc    *page.Document
	client Refresher
	notes  Notifier
	reload func()
	delay  time.Duration
	log    zerolog.Logger
}

// NewRefreshButton wires the handler. reload runs delay after a successful
// refresh; it may be nil.
func NewRefreshButton(doc *page.Document, client Refresher, notes Notifier, reload func(), delay time.Duration) *RefreshButton {
	return &RefreshButton{
		doc:    doc,
		client: client,
		notes:  notes,
		reload: reload,
		delay:  delay,
		log:    logging.Component("refresh").Hook(logging.ContextHook{}),
	}
}

// Click disables the button, asks the server to refresh and reports the
// outcome as a banner, which it returns. It returns nil without doing anything
// when the button is missing or a refresh is already running.
func (r *RefreshButton) Click(ctx context.Context) *notify.Banner {
	btn := r.doc.ByID(page.IDRefreshData)
	if btn == nil || r.doc.Disabled(btn) {
		return nil
	}

	ctx = logging.WithTrigger(ctx, logging.TriggerManual)

	original := r.doc.OwnText(btn)
	r.doc.SetDisabled(btn, true)
	r.doc.SetText(btn, RefreshingLabel)
	defer func() {
		r.doc.SetDisabled(btn, false)
		r.doc.SetText(btn, original)
	}()

	result, err := r.client.Refresh(ctx)
	if err != nil {
		r.log.Error().Ctx(ctx).Err(err).Msg("refresh failed")
		return r.notes.Errorf("Error: %s", err.Error())
	}

	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "Failed to refresh data"
		}
		return r.notes.Errorf("Error: %s", msg)
	}

	b := r.notes.Successf("Data refreshed successfully! %s", result.Message)
	if r.reload != nil {
		time.AfterFunc(r.delay, r.reload)
	}
	return b
}

// Busy reports whether a refresh is in flight.
func (r *RefreshButton) Busy() bool {
	btn := r.doc.ByID(page.IDRefreshData)
	return btn != nil && r.doc.Disabled(btn)
}
