package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/bizfindr/bizfindr/internal/bizfindr"
	"github.com/bizfindr/bizfindr/internal/core/widgets"
	"github.com/bizfindr/bizfindr/pkg/iojson"
)

type StatsCmd struct {
	flags *Flags
	app   *bizfindr.App

	// flags
	jsonOutput bool
}

// statsInfo is the JSON output format for bizfindr stats --json.
type statsInfo struct {
	TotalRegistrations int64  `json:"total_registrations"`
	Formatted          string `json:"formatted"`
	LastUpdated        string `json:"last_updated,omitempty"`
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *bizfindr.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "stats",
		Usage:     "Print the current registration count",
		UsageText: "bizfindr stats [--json]",
		Description: `Fetches /api/stats once and prints the total registrations the way the
dashboard navbar shows them, followed by when the data was last updated.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	stats, err := cmd.app.Client.Stats(ctx)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	out := c.Root().Writer
	info := statsInfo{
		TotalRegistrations: stats.TotalRegistrations,
		Formatted:          cmd.app.Format.Format(stats.TotalRegistrations),
		LastUpdated:        stats.LastUpdated,
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, info)
	}

	_, _ = fmt.Fprintln(out, info.Formatted)
	_, _ = fmt.Fprintf(out, "Last updated: %s\n", widgets.FormatDate(stats.LastUpdated))
	return nil
}
