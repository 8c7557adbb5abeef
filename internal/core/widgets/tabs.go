package widgets

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/bizfindr/bizfindr/internal/core/kv"
	"github.com/bizfindr/bizfindr/internal/core/logging"
	"github.com/bizfindr/bizfindr/internal/core/page"
)

// ActiveTabKey is the KV key holding the last selected tab.
const ActiveTabKey = "activeTab"

const tabLinkSelector = `a[data-bs-toggle="tab"]`

// TabMemory remembers the selected tab across restarts.
type TabMemory struct {
	doc   *page.Document
	store *kv.TypedKV[string]
	log   zerolog.Logger
}

// NewTabMemory creates the handler. store may be nil, in which case tab
// selection still works but is not remembered.
func NewTabMemory(doc *page.Document, store kv.KV) *TabMemory {
	t := &TabMemory{doc: doc, log: logging.Component("tabs")}
	if store != nil {
		t.store = kv.Scoped[string](store, "")
	}
	return t
}

// Tabs returns the href of every tab link in document order.
func (t *TabMemory) Tabs() []string {
	links := t.doc.QueryAll(tabLinkSelector)
	tabs := make([]string, 0, len(links))
	for _, l := range links {
		href, _ := t.doc.Attr(l, page.AttrHref)
		tabs = append(tabs, href)
	}
	return tabs
}

// Active returns the href of the tab link carrying the active class.
func (t *TabMemory) Active() string {
	for _, l := range t.doc.QueryAll(tabLinkSelector) {
		if t.doc.HasClass(l, "active") {
			href, _ := t.doc.Attr(l, page.AttrHref)
			return href
		}
	}
	return ""
}

// Select activates tab and persists it. Unknown tabs are ignored.
func (t *TabMemory) Select(ctx context.Context, tab string) bool {
	if !t.show(tab) {
		return false
	}
	if t.store != nil {
		if err := t.store.Set(ctx, ActiveTabKey, tab); err != nil {
			t.log.Warn().Err(err).Str("tab", tab).Msg("failed to save active tab")
		}
	}
	return true
}

// Next selects the tab after the active one, wrapping around.
func (t *TabMemory) Next(ctx context.Context) string {
	tabs := t.Tabs()
	if len(tabs) == 0 {
		return ""
	}
	idx := slices.Index(tabs, t.Active())
	next := tabs[(idx+1)%len(tabs)]
	t.Select(ctx, next)
	return next
}

// Restore activates the saved tab when it is one of the page's tabs and
// returns it. It returns "" when nothing usable was saved.
func (t *TabMemory) Restore(ctx context.Context) string {
	if t.store == nil {
		return ""
	}

	saved, found, err := t.store.Lookup(ctx, ActiveTabKey)
	if err != nil {
		t.log.Warn().Err(err).Msg("failed to load active tab")
		return ""
	}
	if !found || !t.show(saved) {
		return ""
	}
	return saved
}

func (t *TabMemory) show(tab string) bool {
	links := t.doc.QueryAll(tabLinkSelector)
	var target *page.Element
	for _, l := range links {
		if href, _ := t.doc.Attr(l, page.AttrHref); href == tab {
			target = l
			break
		}
	}
	if target == nil {
		return false
	}

	for _, l := range links {
		if l == target {
			t.doc.AddClass(l, "active")
		} else {
			t.doc.RemoveClass(l, "active")
		}
	}
	return true
}
