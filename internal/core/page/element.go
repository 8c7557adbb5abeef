// Package page models the BizFindr page as a small element tree. Handlers in
// the rest of the application receive explicit element references instead of
// reaching into ambient globals, which keeps them testable without a renderer.
package page

import (
	"slices"
	"strings"
)

// Element is a node in a Document. ID and Tag are fixed at construction; every
// other field is guarded by the owning Document once the element is attached.
type Element struct {
	id       string
	tag      string
	classes  []string
	attrs    map[string]string
	text     string
	children []*Element
	parent   *Element
}

// Option configures an Element at construction time.
type Option func(*Element)

// WithID sets the element id.
func WithID(id string) Option {
	return func(e *Element) { e.id = id }
}

// WithClass adds one or more classes.
func WithClass(classes ...string) Option {
	return func(e *Element) {
		for _, c := range classes {
			for _, f := range strings.Fields(c) {
				if !slices.Contains(e.classes, f) {
					e.classes = append(e.classes, f)
				}
			}
		}
	}
}

// WithAttr sets an attribute.
func WithAttr(key, value string) Option {
	return func(e *Element) { e.attrs[key] = value }
}

// WithText sets the text content.
func WithText(text string) Option {
	return func(e *Element) { e.text = text }
}

// WithChildren appends children in order.
func WithChildren(children ...*Element) Option {
	return func(e *Element) {
		for _, c := range children {
			c.parent = e
			e.children = append(e.children, c)
		}
	}
}

// New creates a detached element. Detached elements are owned by the caller
// until they are inserted into a Document.
func New(tag string, opts ...Option) *Element {
	e := &Element{
		tag:   strings.ToLower(tag),
		attrs: map[string]string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the element id, or "" when unset.
func (e *Element) ID() string { return e.id }

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.tag }

func (e *Element) hasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

func (e *Element) attr(key string) (string, bool) {
	switch key {
	case "id":
		return e.id, e.id != ""
	case "class":
		return strings.Join(e.classes, " "), len(e.classes) > 0
	}
	v, ok := e.attrs[key]
	return v, ok
}

// walk visits e and its descendants depth first. Returning false stops the walk.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

func (e *Element) detach() bool {
	p := e.parent
	if p == nil {
		return false
	}
	idx := slices.Index(p.children, e)
	if idx < 0 {
		e.parent = nil
		return false
	}
	p.children = slices.Delete(p.children, idx, idx+1)
	e.parent = nil
	return true
}

func (e *Element) isDescendantOf(ancestor *Element) bool {
	for p := e; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}
