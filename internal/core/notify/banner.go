package notify

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bizfindr/bizfindr/internal/core/page"
)

// Banner states. A banner only ever moves from visible to removed.
const (
	stateVisible int32 = iota
	stateRemoved
)

// Banner is one alert on the page. It is created visible and removed exactly
// once, by whichever of Close, Center.Dismiss or the auto-dismiss timer runs
// first.
type Banner struct {
	id    string
	n     Notification
	el    *page.Element
	doc   *page.Document
	state atomic.Int32
	timer atomic.Pointer[time.Timer]

	onClose func(*Banner)
}

// ID returns the banner's element id.
func (b *Banner) ID() string { return b.id }

// Notification returns the event the banner displays.
func (b *Banner) Notification() Notification { return b.n }

// Element returns the banner's element. It stays valid after removal.
func (b *Banner) Element() *page.Element { return b.el }

// Visible reports whether the banner has not been closed yet.
func (b *Banner) Visible() bool { return b.state.Load() == stateVisible }

// Close removes the banner from the page. It reports whether this call did
// the removal; closing an already removed banner does nothing.
func (b *Banner) Close() bool {
	if !b.state.CompareAndSwap(stateVisible, stateRemoved) {
		return false
	}

	if t := b.timer.Load(); t != nil {
		t.Stop()
	}
	b.doc.Remove(b.el)

	if b.onClose != nil {
		b.onClose(b)
	}
	return true
}

// arm schedules auto-dismissal. A timer armed after Close fires into a no-op.
func (b *Banner) arm(d time.Duration) {
	if d <= 0 {
		return
	}
	b.timer.Store(time.AfterFunc(d, func() { b.Close() }))
}

// HTML renders the banner as Bootstrap alert markup. The message is emitted
// as-is; callers are responsible for escaping untrusted text.
func (b *Banner) HTML() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div id="%s" class="%s" role="alert">`, b.id, strings.Join(classesFor(b.n.Severity), " "))
	sb.WriteString("\n    ")
	sb.WriteString(b.n.Message)
	sb.WriteString("\n    ")
	sb.WriteString(`<button type="button" class="btn-close" data-bs-dismiss="alert"></button>`)
	sb.WriteString("\n</div>")
	return sb.String()
}

func classesFor(s Severity) []string {
	return []string{"alert", "alert-" + string(s), "alert-dismissible", "fade", "show"}
}

func newBannerElement(id string, n Notification) *page.Element {
	return page.New("div",
		page.WithID(id),
		page.WithClass(classesFor(n.Severity)...),
		page.WithAttr("role", "alert"),
		page.WithText(n.Message),
		page.WithChildren(
			page.New("button",
				page.WithClass("btn-close"),
				page.WithAttr("type", "button"),
				page.WithAttr("data-bs-dismiss", "alert"),
			),
		),
	)
}
