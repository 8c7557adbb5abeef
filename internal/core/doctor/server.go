package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bizfindr/bizfindr/internal/core/stats"
)

// ServerCheck fetches the stats endpoint once to confirm the server answers.
type ServerCheck struct {
	source  stats.Source
	baseURL string
	now     func() time.Time
}

// NewServerCheck creates a new server check.
func NewServerCheck(source stats.Source, baseURL string) *ServerCheck {
	return &ServerCheck{source: source, baseURL: baseURL, now: time.Now}
}

func (c *ServerCheck) Name() string {
	return "Server"
}

func (c *ServerCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	start := c.now()
	s, err := c.source.Stats(ctx)
	if err != nil {
		result.Items = append(result.Items, fail(c.baseURL, err.Error()))
		return result
	}
	elapsed := c.now().Sub(start).Round(time.Millisecond)

	result.Items = append(result.Items, pass(c.baseURL,
		fmt.Sprintf("%s registrations in %s", humanize.Comma(s.TotalRegistrations), elapsed)))

	if s.LastUpdated == "" {
		result.Items = append(result.Items, warn("last_updated", "server has never refreshed its data"))
	}

	return result
}
