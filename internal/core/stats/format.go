package stats

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Defaults for the navbar stat text.
const (
	DefaultLocale = "en-US"
	DefaultSuffix = " records"
)

// Formatter renders a count with locale grouping followed by a fixed suffix.
type Formatter struct {
	printer *message.Printer
	suffix  string
}

// NewFormatter builds a formatter for a BCP 47 locale tag such as "en-US" or
// "de-DE".
func NewFormatter(locale, suffix string) (Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return Formatter{printer: message.NewPrinter(tag), suffix: suffix}, nil
}

// DefaultFormatter groups in en-US and appends " records".
func DefaultFormatter() Formatter {
	return Formatter{printer: message.NewPrinter(language.AmericanEnglish), suffix: DefaultSuffix}
}

// Number renders n with grouping only.
func (f Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Format renders n with grouping and the suffix.
func (f Formatter) Format(n int64) string {
	return f.Number(n) + f.suffix
}
