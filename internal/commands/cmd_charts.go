package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/bizfindr/bizfindr/internal/core/charts"
	"github.com/bizfindr/bizfindr/internal/core/page"
	"github.com/bizfindr/bizfindr/internal/devserver"
	"github.com/bizfindr/bizfindr/internal/printer"
	"github.com/bizfindr/bizfindr/pkg/iojson"
)

type ChartsCmd struct {
	flags *Flags

	businessTypes *iojson.FileReader[charts.Data]
	trends        *iojson.FileReader[charts.Data]
	out           string
	serve         string
}

// NewChartsCmd creates a new charts command
func NewChartsCmd(flags *Flags) *ChartsCmd {
	return &ChartsCmd{
		flags:         flags,
		businessTypes: iojson.NewFileReader[charts.Data]("business-types", "JSON file with business type chart data (- for stdin)"),
		trends:        iojson.NewFileReader[charts.Data]("trends", "JSON file with registration trend chart data (- for stdin)"),
	}
}

// Register adds the charts command to the application
func (cmd *ChartsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "charts",
		Usage:     "Render dashboard charts to HTML",
		UsageText: "bizfindr charts [--business-types FILE] [--trends FILE] [--out FILE | --serve ADDR]",
		Description: `Renders the business types doughnut and the registration trends line chart
from chart data files shaped like {"labels": [...], "datasets": [...]}.

Charts whose data is missing labels or datasets are skipped. Use --serve to
preview the page in a browser instead of writing a file.`,
		Flags: []cli.Flag{
			cmd.businessTypes.Flag(),
			cmd.trends.Flag(),
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (- for stdout)",
				Value:       "charts.html",
				Destination: &cmd.out,
			},
			&cli.StringFlag{
				Name:        "serve",
				Usage:       "serve the page on this address instead of writing a file (e.g. :8081)",
				Destination: &cmd.serve,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ChartsCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if !cmd.businessTypes.Provided() && !cmd.trends.Provided() {
		return errors.New("at least one of --business-types or --trends is required")
	}

	doc := page.NewDashboard()
	if err := cmd.attach(doc, cmd.businessTypes, page.IDBusinessTypes); err != nil {
		return err
	}
	if err := cmd.attach(doc, cmd.trends, page.IDRegistrationTrd); err != nil {
		return err
	}

	var buf bytes.Buffer
	n, err := charts.RenderPage(&buf, doc)
	if err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	if n == 0 {
		return errors.New("no chart had both labels and datasets")
	}

	if cmd.serve != "" {
		return cmd.runServer(ctx, p, buf.Bytes())
	}

	if cmd.out == "-" {
		_, err := c.Root().Writer.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(cmd.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cmd.out, err)
	}
	p.Successf("Wrote %d chart(s) to %s", n, cmd.out)
	return nil
}

func (cmd *ChartsCmd) attach(doc *page.Document, fr *iojson.FileReader[charts.Data], id string) error {
	if !fr.Provided() {
		return nil
	}
	d, err := fr.Read()
	if err != nil {
		return fmt.Errorf("read %s data: %w", id, err)
	}
	return charts.Attach(doc, id, d)
}

func (cmd *ChartsCmd) runServer(ctx context.Context, p *printer.Printer, html []byte) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := devserver.NewEngine()
	engine.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
	})

	p.Infof("Serving charts on %s (Ctrl+C to stop)", cmd.serve)
	return devserver.Serve(ctx, cmd.serve, engine)
}
