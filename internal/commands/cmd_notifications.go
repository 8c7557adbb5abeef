package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/bizfindr/bizfindr/internal/bizfindr"
	"github.com/bizfindr/bizfindr/internal/core/notify"
	"github.com/bizfindr/bizfindr/internal/printer"
	"github.com/bizfindr/bizfindr/pkg/iojson"
)

type NotificationsCmd struct {
	flags *Flags
	app   *bizfindr.App

	// flags
	jsonOutput bool
	limit      int
}

// notificationInfo is the JSON output format for notifications ls --json.
type notificationInfo struct {
	ID        int64     `json:"id"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewNotificationsCmd creates a new notifications command
func NewNotificationsCmd(flags *Flags, app *bizfindr.App) *NotificationsCmd {
	return &NotificationsCmd{flags: flags, app: app}
}

// Register adds the notifications command to the application
func (cmd *NotificationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "notifications",
		Aliases: []string{"notes"},
		Usage:   "Inspect the notification history",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List past notifications, newest first",
				UsageText: "bizfindr notifications ls [--json] [--limit N]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
					&cli.IntFlag{
						Name:        "limit",
						Aliases:     []string{"n"},
						Usage:       "show at most N notifications (0 for all)",
						Destination: &cmd.limit,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "clear",
				Usage:     "Delete the notification history",
				UsageText: "bizfindr notifications clear",
				Action:    cmd.runClear,
			},
		},
	})

	return app
}

func (cmd *NotificationsCmd) runList(ctx context.Context, c *cli.Command) error {
	items, err := cmd.app.History.List(ctx)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}
	if cmd.limit > 0 && len(items) > cmd.limit {
		items = items[:cmd.limit]
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		infos := make([]notificationInfo, 0, len(items))
		for _, n := range items {
			infos = append(infos, toNotificationInfo(n))
		}
		return iojson.WriteWith(out, c.Root().ErrWriter, infos)
	}

	if len(items) == 0 {
		printer.Ctx(ctx).Infof("No notifications")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WHEN\tSEVERITY\tMESSAGE")
	for _, n := range items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Time(n.CreatedAt), n.Severity, n.Message)
	}
	return w.Flush()
}

func (cmd *NotificationsCmd) runClear(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	count, err := cmd.app.History.Count(ctx)
	if err != nil {
		return fmt.Errorf("count notifications: %w", err)
	}
	if count == 0 {
		p.Infof("No notifications to clear")
		return nil
	}

	if err := cmd.app.History.Clear(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	p.Successf("Cleared %s notification(s)", humanize.Comma(count))
	return nil
}

func toNotificationInfo(n notify.Notification) notificationInfo {
	return notificationInfo{
		ID:        n.ID,
		Severity:  string(n.Severity),
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
}
