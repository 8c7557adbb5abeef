package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bizfindr/bizfindr/internal/core/styles"
	"github.com/bizfindr/bizfindr/pkg/tuitest"
)

func TestPrinter_Lines(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("saved %d", 3)
	p.Errorf("failed: %s", "boom")
	p.Printf("plain")

	out := tuitest.StripANSI(buf.String())
	assert.Equal(t,
		styles.IconSuccess+" saved 3\n"+styles.IconDanger+" failed: boom\nplain",
		out,
	)
}

func TestPrinter_SeverityFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Severityf("primary", "hello")

	assert.Equal(t, styles.IconInfo+" hello", tuitest.StripANSI(buf.String()))
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	assert.Same(t, p, Ctx(NewContext(context.Background(), p)))
	assert.NotNil(t, Ctx(context.Background()))
}
