package widgets

import (
	"time"

	"github.com/bizfindr/bizfindr/internal/core/page"
)

// Form loading-state texts and timing.
const (
	ProcessingLabel    = "Processing..."
	DefaultRevertAfter = 3 * time.Second
	classNoJS          = "no-js"
	selectorSubmit     = `button[type="submit"]`
)

// FormLoading puts a form's submit button into a temporary busy state.
type FormLoading struct {
	doc         *page.Document
	revertAfter time.Duration
}

// NewFormLoading creates the handler.
func NewFormLoading(doc *page.Document, revertAfter time.Duration) *FormLoading {
	return &FormLoading{doc: doc, revertAfter: revertAfter}
}

// Submit disables the submit button of form and shows a processing label,
// restoring both after the revert delay. Forms with class no-js and buttons
// marked data-no-loading are left alone. It reports whether the button was
// changed.
func (f *FormLoading) Submit(form *page.Element) bool {
	if form == nil || f.doc.HasClass(form, classNoJS) {
		return false
	}

	btn := f.doc.QueryIn(form, selectorSubmit)
	if btn == nil {
		return false
	}
	if _, ok := f.doc.Attr(btn, page.AttrNoLoading); ok {
		return false
	}

	original := f.doc.OwnText(btn)
	f.doc.SetDisabled(btn, true)
	f.doc.SetText(btn, ProcessingLabel)

	time.AfterFunc(f.revertAfter, func() {
		f.doc.SetDisabled(btn, false)
		f.doc.SetText(btn, original)
	})
	return true
}

// ClampDateInputs sets max on every date input to today's date and returns
// how many inputs were updated.
func ClampDateInputs(doc *page.Document, now time.Time) int {
	inputs := doc.QueryAll(`input[type="date"]`)
	today := now.UTC().Format(time.DateOnly)
	for _, in := range inputs {
		doc.SetAttr(in, "max", today)
	}
	return len(inputs)
}
