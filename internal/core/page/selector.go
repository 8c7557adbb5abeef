package page

import (
	"fmt"
	"strings"
)

// selector is a single compound selector: an optional tag followed by any
// number of #id, .class and [attr] / [attr="value"] parts.
type selector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrMatch
}

type attrMatch struct {
	key      string
	value    string
	hasValue bool
}

func parseSelector(s string) (selector, error) {
	var sel selector
	s = strings.TrimSpace(s)
	if s == "" {
		return sel, fmt.Errorf("empty selector")
	}

	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		return s[start:i]
	}

	if isIdentByte(s[0]) {
		sel.tag = strings.ToLower(readIdent())
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			i++
			sel.id = readIdent()
			if sel.id == "" {
				return sel, fmt.Errorf("selector %q: empty id", s)
			}
		case '.':
			i++
			class := readIdent()
			if class == "" {
				return sel, fmt.Errorf("selector %q: empty class", s)
			}
			sel.classes = append(sel.classes, class)
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return sel, fmt.Errorf("selector %q: unterminated attribute", s)
			}
			body := s[i+1 : i+end]
			i += end + 1

			m := attrMatch{key: body}
			if k, v, ok := strings.Cut(body, "="); ok {
				m.key = strings.TrimSpace(k)
				m.value = strings.Trim(strings.TrimSpace(v), `"'`)
				m.hasValue = true
			}
			if m.key == "" {
				return sel, fmt.Errorf("selector %q: empty attribute name", s)
			}
			sel.attrs = append(sel.attrs, m)
		default:
			return sel, fmt.Errorf("selector %q: unexpected %q", s, s[i])
		}
	}

	return sel, nil
}

func (sel selector) matches(e *Element) bool {
	if sel.tag != "" && sel.tag != e.tag {
		return false
	}
	if sel.id != "" && sel.id != e.id {
		return false
	}
	for _, c := range sel.classes {
		if !e.hasClass(c) {
			return false
		}
	}
	for _, m := range sel.attrs {
		v, ok := e.attr(m.key)
		if !ok {
			return false
		}
		if m.hasValue && v != m.value {
			return false
		}
	}
	return true
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
