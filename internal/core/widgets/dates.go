package widgets

import (
	"time"

	"github.com/dustin/go-humanize"
)

const displayLayout = "Jan 2, 2006, 03:04 PM"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate accepts the timestamp shapes the server emits.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders s as "Jan 2, 2006, 03:04 PM", or "N/A" when s is empty
// or not a recognised timestamp.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return "N/A"
	}
	return t.Format(displayLayout)
}

// FormatRelative renders s relative to now, e.g. "3 minutes ago". It returns
// "" for unparseable input.
func FormatRelative(s string, now time.Time) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
