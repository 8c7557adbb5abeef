package widgets

import "github.com/bizfindr/bizfindr/internal/core/page"

// DefaultBackToTopThreshold is the scroll offset past which the back-to-top
// control is shown.
const DefaultBackToTopThreshold = 300

const classShow = "show"

// BackToTop toggles #backToTop as the page scrolls.
type BackToTop struct {
	doc       *page.Document
	threshold int
}

// NewBackToTop creates the handler.
func NewBackToTop(doc *page.Document, threshold int) *BackToTop {
	return &BackToTop{doc: doc, threshold: threshold}
}

// Scroll updates visibility for offset and reports whether the control is
// shown. Pages without the control are ignored.
func (b *BackToTop) Scroll(offset int) bool {
	btn := b.doc.ByID(page.IDBackToTop)
	if btn == nil {
		return false
	}
	if offset > b.threshold {
		b.doc.AddClass(btn, classShow)
		return true
	}
	b.doc.RemoveClass(btn, classShow)
	return false
}

// Visible reports whether the control is currently shown.
func (b *BackToTop) Visible() bool {
	btn := b.doc.ByID(page.IDBackToTop)
	return btn != nil && b.doc.HasClass(btn, classShow)
}

// Click returns the offset to scroll to, which is always the top.
func (b *BackToTop) Click() int {
	b.Scroll(0)
	return 0
}
