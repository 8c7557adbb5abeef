package notify

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bizfindr/bizfindr/internal/core/logging"
	"github.com/bizfindr/bizfindr/internal/core/page"
)

// Center creates alert banners on a page and tracks the ones still visible.
type Center struct {
	doc   *page.Document
	store Store
	log   zerolog.Logger

	defaultDismiss time.Duration
	now            func() time.Time

	mu          sync.Mutex
	banners     []*Banner // newest first
	subscribers []func(Notification)
}

// NewCenter creates a notification center for doc. store may be nil, in which
// case nothing is persisted.
func NewCenter(doc *page.Document, store Store) *Center {
	return &Center{
		doc:            doc,
		store:          store,
		log:            logging.Component("notify"),
		defaultDismiss: DefaultAutoDismiss,
		now:            time.Now,
	}
}

// SetDefaultDismiss changes the delay used by Show and the formatted helpers.
func (c *Center) SetDefaultDismiss(d time.Duration) {
	c.mu.Lock()
	c.defaultDismiss = d
	c.mu.Unlock()
}

// Subscribe registers fn to receive every notification. Callbacks run on the
// goroutine that called Notify.
func (c *Center) Subscribe(fn func(Notification)) {
	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	c.mu.Unlock()
}

// Show displays an info banner with the default auto-dismiss delay.
func (c *Center) Show(message string) *Banner {
	return c.Notify(message, SeverityInfo, c.dismissAfter())
}

// Notify inserts a banner at the top of the alerts surface. The surface is
// looked up on every call: the alerts container, else main, else the body.
// autoDismiss <= 0 keeps the banner until it is closed.
func (c *Center) Notify(message string, severity Severity, autoDismiss time.Duration) *Banner {
	n := Notification{
		Severity:    severity,
		Message:     message,
		AutoDismiss: autoDismiss,
		CreatedAt:   c.now(),
	}

	if c.store != nil {
		id, err := c.store.Save(context.Background(), n)
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to persist notification")
		} else {
			n.ID = id
		}
	}

	id := "alert-" + uuid.NewString()
	b := &Banner{
		id:      id,
		n:       n,
		el:      newBannerElement(id, n),
		doc:     c.doc,
		onClose: c.forget,
	}

	c.mu.Lock()
	c.banners = slices.Insert(c.banners, 0, b)
	subs := slices.Clone(c.subscribers)
	c.mu.Unlock()

	c.doc.Prepend(c.surface(), b.el)
	if !b.Visible() {
		// Closed before it was attached.
		c.doc.Remove(b.el)
	}
	b.arm(autoDismiss)

	c.log.Debug().
		Str("severity", string(severity)).
		Dur("auto_dismiss", autoDismiss).
		Msg("banner shown")

	for _, fn := range subs {
		fn(n)
	}

	return b
}

// Dismiss is the close-button handler. target may be the button or any
// element inside a banner. It reports whether a banner was removed.
func (c *Center) Dismiss(target *page.Element) bool {
	el := c.doc.Closest(target, ".alert")
	if el == nil {
		return false
	}

	c.mu.Lock()
	idx := slices.IndexFunc(c.banners, func(b *Banner) bool { return b.el == el })
	var b *Banner
	if idx >= 0 {
		b = c.banners[idx]
	}
	c.mu.Unlock()

	if b == nil {
		// Not one of ours; remove the element directly.
		return c.doc.Remove(el)
	}
	return b.Close()
}

// DismissNewest closes the most recent visible banner.
func (c *Center) DismissNewest() bool {
	c.mu.Lock()
	if len(c.banners) == 0 {
		c.mu.Unlock()
		return false
	}
	b := c.banners[0]
	c.mu.Unlock()

	return b.Close()
}

// DismissAll closes every visible banner and returns how many were removed.
func (c *Center) DismissAll() int {
	c.mu.Lock()
	all := slices.Clone(c.banners)
	c.mu.Unlock()

	closed := 0
	for _, b := range all {
		if b.Close() {
			closed++
		}
	}
	return closed
}

// Active returns the visible banners, newest first.
func (c *Center) Active() []*Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.banners)
}

// Infof shows a formatted info banner.
func (c *Center) Infof(format string, args ...any) *Banner {
	return c.Notify(fmt.Sprintf(format, args...), SeverityInfo, c.dismissAfter())
}

// Successf shows a formatted success banner.
func (c *Center) Successf(format string, args ...any) *Banner {
	return c.Notify(fmt.Sprintf(format, args...), SeveritySuccess, c.dismissAfter())
}

// Warnf shows a formatted warning banner.
func (c *Center) Warnf(format string, args ...any) *Banner {
	return c.Notify(fmt.Sprintf(format, args...), SeverityWarning, c.dismissAfter())
}

// Errorf shows a formatted danger banner.
func (c *Center) Errorf(format string, args ...any) *Banner {
	return c.Notify(fmt.Sprintf(format, args...), SeverityDanger, c.dismissAfter())
}

func (c *Center) dismissAfter() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaultDismiss
}

func (c *Center) surface() *page.Element {
	if el := c.doc.Query("." + page.ClassAlertsContainer); el != nil {
		return el
	}
	if el := c.doc.Query(page.TagMain); el != nil {
		return el
	}
	return c.doc.Root()
}

func (c *Center) forget(b *Banner) {
	c.mu.Lock()
	c.banners = slices.DeleteFunc(c.banners, func(x *Banner) bool { return x == b })
	c.mu.Unlock()
}
