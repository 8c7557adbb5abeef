package commands

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"

	"github.com/bizfindr/bizfindr/internal/bizfindr"
	"github.com/bizfindr/bizfindr/internal/printer"
	"github.com/bizfindr/bizfindr/internal/tui"
	"github.com/bizfindr/bizfindr/pkg/executil"
	"github.com/bizfindr/bizfindr/pkg/profiler"
	"github.com/bizfindr/bizfindr/pkg/utils"
)

type TuiCmd struct {
	flags *Flags
	app   *bizfindr.App

	profilerPort int
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *bizfindr.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("BIZFINDR_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	stopProfiler, err := profiler.StartFor(ctx, cmd.profilerPort)
	if err != nil {
		return fmt.Errorf("failed to start profiler: %w", err)
	}
	defer stopProfiler()

	// Anything printed while the alternate screen is up would be lost, so
	// config warnings are held back until the program exits.
	deferred := &utils.DeferredWriter{}
	p := printer.New(deferred)
	for _, w := range cmd.app.Config.Warnings() {
		p.Warnf("%s: %s (%s)", w.Category, w.Message, w.Item)
	}
	defer func() { _ = deferred.Flush(os.Stderr) }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dash := cmd.app.NewDashboard(ctx)
	buffer := tui.NewNotificationBuffer()
	dash.Center.Subscribe(buffer.Push)

	poll := dash.Start(ctx)
	defer poll.Stop()

	exec := &executil.RealExecutor{}
	m := tui.New(ctx, tui.Options{
		Doc:       dash.Doc,
		Center:    dash.Center,
		History:   cmd.app.History,
		State:     dash.State,
		Refresh:   dash.Refresh,
		Tabs:      dash.Tabs,
		Search:    dash.Search,
		Forms:     dash.Forms,
		Draft:     dash.Draft,
		BackToTop: dash.BackToTop,
		Buffer:    buffer,
		Open: func(ctx context.Context, url string) error {
			return executil.OpenURL(ctx, exec, url)
		},
	})

	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
