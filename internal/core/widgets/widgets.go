// Package widgets holds the page handlers that sit between user actions and
// the document: the refresh button, form loading states, delete confirmation,
// search validation, tab memory and the back-to-top control. Every handler
// takes its target element explicitly.
package widgets

import (
	"context"

	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/core/stats"
)

// Notifier is the part of notify.Center the handlers report through.
type Notifier interface {
	Successf(format string, args ...any) *notify.Banner
	Warnf(format string, args ...any) *notify.Banner
	Errorf(format string, args ...any) *notify.Banner
}

// Refresher triggers a server-side data refresh.
type Refresher interface {
	Refresh(ctx context.Context) (stats.RefreshResult, error)
}

var (
	_ Notifier  = (*notify.Center)(nil)
	_ Refresher = (*stats.Client)(nil)
)
