package main

import (
	"context"
	"fmt"
	"hydration/internal/application/dto"
	"hydration/internal/domain/constant"
	"hydration/internal/interfaces/api/client"
	appErrors "hydration/internal/pkg/errors"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
)

// Global is bound into every command's Run.
type Global struct {
	Client *client.Client
	Out    io.Writer
}

// CLI is the hydractl command line.
type CLI struct {
	Server string `short:"s" help:"Base URL of the hydration server" default:"http://localhost:8080" env:"HYDRATION_SERVER"`

	Status   StatusCmd   `cmd:"" default:"1" help:"Show the reminder settings and scheduled notifications"`
	Enable   EnableCmd   `cmd:"" help:"Turn hydration reminders on"`
	Disable  DisableCmd  `cmd:"" help:"Turn hydration reminders off"`
	Interval IntervalCmd `cmd:"" help:"Change the reminder interval (30m, 1h, 1h30m, 2h, 3h or 4h)"`
	Test     TestCmd     `cmd:"" help:"Send a test notification now"`
}

type StatusCmd struct{}

func (c *StatusCmd) Run(g *Global) error {
	return g.print(g.Client.Settings(context.Background()))
}

type EnableCmd struct{}

func (c *EnableCmd) Run(g *Global) error {
	return g.print(g.Client.SetEnabled(context.Background(), true))
}

type DisableCmd struct{}

func (c *DisableCmd) Run(g *Global) error {
	return g.print(g.Client.SetEnabled(context.Background(), false))
}

type IntervalCmd struct {
	Every time.Duration `arg:"" help:"Interval between reminders"`
}

// Validate rejects intervals the settings UI does not offer.
func (c *IntervalCmd) Validate() error {
	return validateInterval(c.Every)
}

func (c *IntervalCmd) Run(g *Global) error {
	return g.print(g.Client.SetInterval(context.Background(), int(c.Every/time.Second)))
}

type TestCmd struct{}

func (c *TestCmd) Run(g *Global) error {
	return g.print(g.Client.SendTest(context.Background()))
}

func validateInterval(d time.Duration) error {
	if d%time.Second != 0 || !constant.IsAllowedInterval(int(d/time.Second)) {
		return fmt.Errorf("%w: %s", appErrors.ErrInvalidInterval, d)
	}
	return nil
}

func (g *Global) print(resp *dto.PreferenceResponse, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprint(g.Out, formatStatus(resp))
	return nil
}

func formatStatus(resp *dto.PreferenceResponse) string {
	out := fmt.Sprintf("state:    %s\ninterval: %s\n", resp.State, time.Duration(resp.IntervalSeconds)*time.Second)
	for _, s := range resp.Scheduled {
		if s.IntervalSeconds > 0 {
			out += fmt.Sprintf("- %s %s every %s from %s\n", s.ID, s.Trigger,
				time.Duration(s.IntervalSeconds)*time.Second, s.FirstFireAt.Local().Format(time.RFC3339))
			continue
		}
		out += fmt.Sprintf("- %s %s at %s\n", s.ID, s.Trigger, s.FirstFireAt.Local().Format(time.RFC3339))
	}
	return out
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hydractl"),
		kong.Description("Control the hydration reminder server."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&Global{Client: client.New(cli.Server), Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
