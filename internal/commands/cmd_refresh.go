package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/bizfindr/bizfindr/internal/bizfindr"
	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/printer"
)

type RefreshCmd struct {
	flags *Flags
	app   *bizfindr.App
}

// NewRefreshCmd creates a new refresh command
func NewRefreshCmd(flags *Flags, app *bizfindr.App) *RefreshCmd {
	return &RefreshCmd{flags: flags, app: app}
}

// Register adds the refresh command to the application
func (cmd *RefreshCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "refresh",
		Usage:     "Ask the server to refresh its data",
		UsageText: "bizfindr refresh",
		Description: `Posts to /api/refresh exactly like the dashboard's Refresh Data button and
prints the resulting notification. The notification is kept in the history
shown by 'bizfindr notifications ls'.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *RefreshCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	dash := cmd.app.NewDashboard(ctx)
	b := dash.Refresh.Click(ctx)
	if b == nil {
		p.Infof("A refresh is already running")
		return nil
	}

	n := b.Notification()
	p.Severityf(string(n.Severity), "%s", n.Message)
	if n.Severity == notify.SeverityDanger {
		return cli.Exit("", 1)
	}

	dash.Updater.Refresh(ctx)
	if count, ok := dash.State.Count(); ok {
		p.Printf("%s", cmd.app.Format.Format(count))
	}
	return nil
}
