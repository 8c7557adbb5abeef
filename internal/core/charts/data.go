// Package charts turns the chart data attached to the dashboard's chart mounts
// into go-echarts charts.
package charts

import (
	"encoding/json"
	"fmt"

	"github.com/bizfindr/bizfindr/internal/core/page"
)

// Data is the payload of a data-chart-data attribute.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one labelled series.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor Colors    `json:"backgroundColor,omitempty"`
}

// Colors accepts either a single color or a list of colors.
type Colors []string

// UnmarshalJSON implements json.Unmarshaler.
func (c *Colors) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*c = Colors{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return fmt.Errorf("backgroundColor: %w", err)
	}
	*c = many
	return nil
}

// At returns the color for index i, cycling through the list, or "".
func (c Colors) At(i int) string {
	if len(c) == 0 {
		return ""
	}
	return c[i%len(c)]
}

// Parse decodes raw chart data. ok is false when the payload is empty or lacks
// labels or datasets; such mounts are skipped without error.
func Parse(raw string) (Data, bool, error) {
	if raw == "" {
		raw = "{}"
	}

	var d Data
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Data{}, false, fmt.Errorf("parse chart data: %w", err)
	}
	if d.Labels == nil || d.Datasets == nil {
		return d, false, nil
	}
	return d, true, nil
}

// FromElement reads and parses the data-chart-data attribute of el.
func FromElement(doc *page.Document, el *page.Element) (Data, bool, error) {
	if el == nil {
		return Data{}, false, nil
	}
	raw, _ := doc.Attr(el, page.AttrChartData)
	return Parse(raw)
}

// Attach serialises d onto the chart mount with the given id.
func Attach(doc *page.Document, id string, d Data) error {
	el := doc.ByID(id)
	if el == nil {
		return fmt.Errorf("chart mount %q not found", id)
	}

	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode chart data: %w", err)
	}
	doc.SetAttr(el, page.AttrChartData, string(b))
	return nil
}
