package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizfindr/bizfindr/internal/core/page"
)

const businessTypesJSON = `{
	"labels": ["LLC", "Corporation", "Sole Proprietorship"],
	"datasets": [{"label": "Businesses", "data": [120, 45, 30], "backgroundColor": ["#4e73df", "#1cc88a", "#36b9cc"]}]
}`

const trendsJSON = `{
	"labels": ["Jan", "Feb", "Mar"],
	"datasets": [{"label": "Registrations", "data": [10, 14, 9], "backgroundColor": "#4e73df"}]
}`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantOK  bool
		wantErr bool
	}{
		{name: "empty attribute", raw: "", wantOK: false},
		{name: "empty object", raw: "{}", wantOK: false},
		{name: "labels only", raw: `{"labels": ["a"]}`, wantOK: false},
		{name: "datasets only", raw: `{"datasets": []}`, wantOK: false},
		{name: "complete", raw: businessTypesJSON, wantOK: true},
		{name: "single color", raw: trendsJSON, wantOK: true},
		{name: "malformed", raw: `{"labels":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := Parse(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestColors(t *testing.T) {
	d, ok, err := Parse(trendsJSON)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Colors{"#4e73df"}, d.Datasets[0].BackgroundColor)
	assert.Equal(t, "#4e73df", d.Datasets[0].BackgroundColor.At(5))
	assert.Empty(t, Colors(nil).At(0))
}

func TestBusinessTypes(t *testing.T) {
	d, _, err := Parse(businessTypesJSON)
	require.NoError(t, err)

	pie := BusinessTypes(d)
	require.Len(t, pie.MultiSeries, 1)
	assert.Equal(t, "Businesses", pie.MultiSeries[0].Name)
}

func TestRegistrationTrends(t *testing.T) {
	d, _, err := Parse(trendsJSON)
	require.NoError(t, err)

	line := RegistrationTrends(d)
	require.Len(t, line.MultiSeries, 1)
	assert.Equal(t, "Registrations", line.MultiSeries[0].Name)
}

func TestRenderPage(t *testing.T) {
	doc := page.NewDashboard()

	var empty bytes.Buffer
	n, err := RenderPage(&empty, doc)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Zero(t, empty.Len(), "nothing rendered without data")

	bt, _, _ := Parse(businessTypesJSON)
	require.NoError(t, Attach(doc, page.IDBusinessTypes, bt))

	var buf bytes.Buffer
	n, err = RenderPage(&buf, doc)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), page.IDBusinessTypes)
	assert.NotContains(t, buf.String(), page.IDRegistrationTrd)

	tr, _, _ := Parse(trendsJSON)
	require.NoError(t, Attach(doc, page.IDRegistrationTrd, tr))

	buf.Reset()
	n, err = RenderPage(&buf, doc)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Contains(t, buf.String(), page.IDRegistrationTrd)
}

func TestRenderPage_SkipsInvalidData(t *testing.T) {
	doc := page.NewDashboard()
	doc.SetAttr(doc.ByID(page.IDBusinessTypes), page.AttrChartData, "not json")

	var buf bytes.Buffer
	n, err := RenderPage(&buf, doc)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAttach_MissingMount(t *testing.T) {
	assert.Error(t, Attach(page.NewDocument(), page.IDBusinessTypes, Data{}))
}
