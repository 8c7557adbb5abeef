package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/bizfindr/bizfindr/internal/devserver"
	"github.com/bizfindr/bizfindr/internal/printer"
)

type DevServerCmd struct {
	flags *Flags

	// flags
	addr        string
	total       int
	growth      int
	failStats   bool
	failRefresh bool
}

// NewDevServerCmd creates a new devserver command
func NewDevServerCmd(flags *Flags) *DevServerCmd {
	return &DevServerCmd{flags: flags}
}

// Register adds the devserver command to the application
func (cmd *DevServerCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "devserver",
		Usage:     "Run an in-memory stand-in for the BizFindr backend",
		UsageText: "bizfindr devserver [--addr localhost:5000] [--total N] [--growth N]",
		Description: `Serves GET /api/stats, POST /api/refresh and a /charts preview backed by
fixture data. Each successful refresh adds --growth registrations.

Point server.base_url at this address to run the dashboard without the real
backend. --fail-stats and --fail-refresh make the endpoints return errors.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "localhost:5000",
				Destination: &cmd.addr,
			},
			&cli.IntFlag{
				Name:        "total",
				Usage:       "initial total registrations",
				Value:       1234,
				Destination: &cmd.total,
			},
			&cli.IntFlag{
				Name:        "growth",
				Usage:       "registrations added by each refresh",
				Value:       25,
				Destination: &cmd.growth,
			},
			&cli.BoolFlag{
				Name:        "fail-stats",
				Usage:       "make /api/stats return 500",
				Destination: &cmd.failStats,
			},
			&cli.BoolFlag{
				Name:        "fail-refresh",
				Usage:       "make /api/refresh report failure",
				Destination: &cmd.failRefresh,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DevServerCmd) run(ctx context.Context, _ *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fixture := devserver.NewFixture(int64(cmd.total), int64(cmd.growth))
	fixture.SetFailing(cmd.failStats, cmd.failRefresh)

	printer.Ctx(ctx).Infof("Dev server listening on http://%s (Ctrl+C to stop)", cmd.addr)
	return devserver.New(fixture).ListenAndServe(ctx, cmd.addr)
}
