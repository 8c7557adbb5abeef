package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/bizfindr/bizfindr/internal/bizfindr"
	"github.com/bizfindr/bizfindr/internal/core/page"
	"github.com/bizfindr/bizfindr/internal/core/stats"
	"github.com/bizfindr/bizfindr/pkg/tmpl"
)

const defaultWatchFormat = "{{ clock .At }}  {{ .Formatted }}"

type WatchCmd struct {
	flags *Flags
	app   *bizfindr.App

	// flags
	format     string
	interval   time.Duration
	jsonOutput bool
	count      int
}

// watchEvent is the data passed to --format templates and written by --json.
type watchEvent struct {
	At          time.Time `json:"at"`
	Total       int64     `json:"total_registrations"`
	Formatted   string    `json:"formatted"`
	LastUpdated string    `json:"last_updated,omitempty"`
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags, app *bizfindr.App) *WatchCmd {
	return &WatchCmd{flags: flags, app: app}
}

// Register adds the watch command to the application
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Poll the registration count and print every update",
		UsageText: "bizfindr watch [--interval 30s] [--format TEMPLATE | --json]",
		Description: `Runs the same poll loop as the dashboard without a UI. Each successful fetch
prints one line until interrupted.

Templates receive .At, .Total, .Formatted and .LastUpdated and may use the
comma, ago, clock, rfc3339, join, upper and default functions.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Go template for each line",
				Value:       defaultWatchFormat,
				Destination: &cmd.format,
			},
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "poll interval (defaults to stats.interval from config)",
				Destination: &cmd.interval,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.IntFlag{
				Name:        "count",
				Usage:       "exit after this many updates (0 runs until interrupted)",
				Destination: &cmd.count,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	tpl, err := tmpl.Parse(cmd.format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interval := cmd.interval
	if interval <= 0 {
		interval = cmd.app.Config.Stats.Interval
	}

	state := stats.NewState()
	updater := stats.NewUpdater(cmd.app.Client, page.NewDashboard(), state, cmd.app.Format, interval)

	out := c.Root().Writer
	var (
		mu      sync.Mutex
		seen    int
		lastErr error
	)
	updater.OnUpdate(func(total int64) {
		mu.Lock()
		defer mu.Unlock()

		if cmd.count > 0 && seen >= cmd.count {
			return
		}

		ev := watchEvent{
			At:          time.Now(),
			Total:       total,
			Formatted:   cmd.app.Format.Format(total),
			LastUpdated: state.LastUpdated(),
		}
		if err := cmd.write(out, tpl, ev); err != nil {
			lastErr = err
			cancel()
			return
		}

		seen++
		if cmd.count > 0 && seen >= cmd.count {
			cancel()
		}
	})

	h := updater.Start(ctx)
	<-ctx.Done()
	h.Stop()

	mu.Lock()
	defer mu.Unlock()
	return lastErr
}

func (cmd *WatchCmd) write(w io.Writer, tpl *template.Template, ev watchEvent) error {
	if cmd.jsonOutput {
		b, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("encode update: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	line, err := tmpl.Execute(tpl, ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, line)
	return err
}
