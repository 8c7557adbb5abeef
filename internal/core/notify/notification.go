// Package notify shows transient, dismissible banners on the page alerts
// surface and keeps a durable history of what was shown.
package notify

import (
	"context"
	"time"
)

// Severity selects the banner styling.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Known reports whether s is one of the four recognised severities. Unknown
// severities are still rendered; only styling falls back.
func (s Severity) Known() bool {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityDanger:
		return true
	}
	return false
}

// DefaultAutoDismiss is the delay used by Show.
const DefaultAutoDismiss = 5 * time.Second

// Notification is a single banner event.
type Notification struct {
	ID          int64
	Severity    Severity
	Message     string
	AutoDismiss time.Duration
	CreatedAt   time.Time
}

// Store persists notifications to durable storage.
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
