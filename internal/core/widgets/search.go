package widgets

import (
	"net/url"
	"strings"

	"github.com/bizfindr/bizfindr/internal/core/page"
)

// Search form texts.
const (
	SearchingLabel   = "Searching..."
	EmptySearchError = "Please enter a search term or select at least one filter"
	defaultAction    = "/search"
	queryField       = "q"
)

// SearchForm validates and submits #searchForm.
type SearchForm struct {
	doc     *page.Document
	baseURL string
	notes   Notifier
}

// NewSearchForm creates the handler. baseURL prefixes the form action.
func NewSearchForm(doc *page.Document, baseURL string, notes Notifier) *SearchForm {
	return &SearchForm{doc: doc, baseURL: strings.TrimRight(baseURL, "/"), notes: notes}
}

// Form returns #searchForm, or nil when the page has none.
func (s *SearchForm) Form() *page.Element {
	return s.doc.ByID(page.IDSearchForm)
}

// Submit checks that form has a search term or at least one filter. An empty
// search shows a warning and returns false. Otherwise the submit button is
// put in its searching state and the target URL is returned.
func (s *SearchForm) Submit(form *page.Element) (string, bool) {
	if form == nil {
		return "", false
	}

	query, filters := s.fields(form)
	if query == "" && len(filters) == 0 {
		s.notes.Warnf("%s", EmptySearchError)
		return "", false
	}

	if btn := s.doc.QueryIn(form, selectorSubmit); btn != nil {
		s.doc.SetDisabled(btn, true)
		s.doc.SetText(btn, SearchingLabel)
	}

	return s.URL(form), true
}

// SetQuery writes q into the form's search input.
func (s *SearchForm) SetQuery(form *page.Element, q string) {
	if in := s.doc.QueryIn(form, `input[name="q"]`); in != nil {
		s.doc.SetValue(in, q)
	}
}

// URL builds the submit URL for form without validating it.
func (s *SearchForm) URL(form *page.Element) string {
	action, _ := s.doc.Attr(form, page.AttrAction)
	if action == "" {
		action = defaultAction
	}

	query, filters := s.fields(form)
	values := url.Values{}
	values.Set(queryField, query)
	for name, v := range filters {
		values.Set(name, v)
	}

	return s.baseURL + action + "?" + values.Encode()
}

// fields returns the trimmed query and every other named control with a value.
func (s *SearchForm) fields(form *page.Element) (string, map[string]string) {
	var query string
	filters := map[string]string{}

	for _, el := range s.doc.QueryAllIn(form, "[name]") {
		if el.Tag() != "input" && el.Tag() != "select" {
			continue
		}
		name, _ := s.doc.Attr(el, "name")
		value := s.doc.Value(el)
		if name == queryField {
			query = strings.TrimSpace(value)
			continue
		}
		if value != "" {
			filters[name] = value
		}
	}

	return query, filters
}

// ClearFilters resets the form that contains trigger and returns the URL the
// cleared form submits to. It reports false when trigger is not in a form.
func (s *SearchForm) ClearFilters(trigger *page.Element) (string, bool) {
	form := s.doc.Closest(trigger, "form")
	if form == nil {
		return "", false
	}
	s.doc.ResetForm(form)
	return s.URL(form), true
}
