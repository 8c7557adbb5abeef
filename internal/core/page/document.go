package page

import (
	"slices"
	"strings"
	"sync"
)

// Document owns an element tree rooted at a body element. All reads and
// mutations of attached elements go through the Document, which serialises them
// with a single mutex. Callers may hold element references across calls; an
// element removed from the tree stays valid but is no longer reachable by Query.
type Document struct {
	mu      sync.RWMutex
	root    *Element
	changed chan struct{}
}

// NewDocument creates a document with an empty body.
func NewDocument() *Document {
	return &Document{
		root:    New("body"),
		changed: make(chan struct{}, 1),
	}
}

// Root returns the body element.
func (d *Document) Root() *Element { return d.root }

// Changed returns a coalescing signal that fires after mutations. At most one
// signal is buffered, so a slow reader sees one wake-up for a burst of changes.
func (d *Document) Changed() <-chan struct{} { return d.changed }

func (d *Document) signal() {
	select {
	case d.changed <- struct{}{}:
	default:
	}
}

// Query returns the first element in document order that matches sel, or nil.
// Invalid selectors match nothing.
func (d *Document) Query(sel string) *Element {
	return d.QueryIn(d.root, sel)
}

// QueryIn is Query restricted to scope and its descendants.
func (d *Document) QueryIn(scope *Element, sel string) *Element {
	all := d.queryIn(scope, sel, true)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// QueryAll returns every element matching sel in document order.
func (d *Document) QueryAll(sel string) []*Element {
	return d.queryIn(d.root, sel, false)
}

// QueryAllIn is QueryAll restricted to scope and its descendants.
func (d *Document) QueryAllIn(scope *Element, sel string) []*Element {
	return d.queryIn(scope, sel, false)
}

func (d *Document) queryIn(scope *Element, sel string, first bool) []*Element {
	if scope == nil {
		return nil
	}
	parsed, err := parseSelector(sel)
	if err != nil {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*Element
	scope.walk(func(e *Element) bool {
		if parsed.matches(e) {
			out = append(out, e)
			return !first
		}
		return true
	})
	return out
}

// ByID is shorthand for Query("#"+id).
func (d *Document) ByID(id string) *Element {
	return d.Query("#" + id)
}

// Closest returns e or its nearest ancestor matching sel, or nil.
func (d *Document) Closest(e *Element, sel string) *Element {
	parsed, err := parseSelector(sel)
	if err != nil || e == nil {
		return nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for p := e; p != nil; p = p.parent {
		if parsed.matches(p) {
			return p
		}
	}
	return nil
}

// Attached reports whether e is currently part of the tree.
func (d *Document) Attached(e *Element) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return e != nil && e.isDescendantOf(d.root)
}

// Children returns a copy of e's children.
func (d *Document) Children(e *Element) []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(e.children)
}

// Parent returns e's parent, or nil for the root and detached elements.
func (d *Document) Parent(e *Element) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return e.parent
}

// Prepend inserts child as the first child of parent, detaching it from any
// previous parent first.
func (d *Document) Prepend(parent, child *Element) {
	d.mu.Lock()
	child.detach()
	child.parent = parent
	parent.children = slices.Insert(parent.children, 0, child)
	d.mu.Unlock()
	d.signal()
}

// Append inserts child as the last child of parent.
func (d *Document) Append(parent, child *Element) {
	d.mu.Lock()
	child.detach()
	child.parent = parent
	parent.children = append(parent.children, child)
	d.mu.Unlock()
	d.signal()
}

// Remove detaches e from its parent. It reports whether anything was removed;
// removing an element that is already detached is a no-op.
func (d *Document) Remove(e *Element) bool {
	if e == nil {
		return false
	}
	d.mu.Lock()
	removed := e.detach()
	d.mu.Unlock()
	if removed {
		d.signal()
	}
	return removed
}

// Text returns the text content of e and its descendants, concatenated.
func (d *Document) Text(e *Element) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	e.walk(func(n *Element) bool {
		b.WriteString(n.text)
		return true
	})
	return b.String()
}

// OwnText returns only e's own text, excluding descendants.
func (d *Document) OwnText(e *Element) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return e.text
}

// SetText replaces e's own text.
func (d *Document) SetText(e *Element, text string) {
	d.mu.Lock()
	e.text = text
	d.mu.Unlock()
	d.signal()
}

// Attr returns an attribute value and whether it is present.
func (d *Document) Attr(e *Element, key string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return e.attr(key)
}

// SetAttr sets an attribute.
func (d *Document) SetAttr(e *Element, key, value string) {
	d.mu.Lock()
	e.attrs[key] = value
	d.mu.Unlock()
	d.signal()
}

// RemoveAttr deletes an attribute.
func (d *Document) RemoveAttr(e *Element, key string) {
	d.mu.Lock()
	delete(e.attrs, key)
	d.mu.Unlock()
	d.signal()
}

// HasClass reports whether e carries class.
func (d *Document) HasClass(e *Element, class string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return e.hasClass(class)
}

// AddClass adds class to e if missing.
func (d *Document) AddClass(e *Element, class string) {
	d.mu.Lock()
	if e.hasClass(class) {
		d.mu.Unlock()
		return
	}
	e.classes = append(e.classes, class)
	d.mu.Unlock()
	d.signal()
}

// RemoveClass removes class from e if present.
func (d *Document) RemoveClass(e *Element, class string) {
	d.mu.Lock()
	idx := slices.Index(e.classes, class)
	if idx < 0 {
		d.mu.Unlock()
		return
	}
	e.classes = slices.Delete(e.classes, idx, idx+1)
	d.mu.Unlock()
	d.signal()
}

// Disabled reports whether e has the disabled attribute.
func (d *Document) Disabled(e *Element) bool {
	_, ok := d.Attr(e, AttrDisabled)
	return ok
}

// SetDisabled toggles the disabled attribute.
func (d *Document) SetDisabled(e *Element, disabled bool) {
	if disabled {
		d.SetAttr(e, AttrDisabled, "")
		return
	}
	d.RemoveAttr(e, AttrDisabled)
}

// Value returns the value attribute of a form control.
func (d *Document) Value(e *Element) string {
	v, _ := d.Attr(e, "value")
	return v
}

// SetValue sets the value attribute of a form control.
func (d *Document) SetValue(e *Element, value string) {
	d.SetAttr(e, "value", value)
}

// ResetForm clears the value of every input and select inside form.
func (d *Document) ResetForm(form *Element) {
	d.mu.Lock()
	form.walk(func(e *Element) bool {
		if e.tag == "input" || e.tag == "select" || e.tag == "textarea" {
			delete(e.attrs, "value")
		}
		return true
	})
	d.mu.Unlock()
	d.signal()
}
