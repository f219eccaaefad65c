package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-drift/semkit/pkg/console"
	"github.com/go-drift/semkit/pkg/describe"
	"github.com/go-drift/semkit/pkg/errors"
	"github.com/go-drift/semkit/pkg/logger"
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/view"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Run an application on the text console",
		Long: `Load a description and drive one of its views on the terminal.

Switches and menus ask which action to apply until an action quits or the
input ends. Forms ask a value for each variable. Typing "cancel" leaves
the current question.

Usage:
  semkit run app.yaml              # Run the main view
  semkit run app.yaml settings     # Run the view named settings`,
		Usage: "semkit run <file> [view]",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("a description file is required\n\nUsage: semkit run <file> [view]")
	}

	log, err := logger.FromEnv()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()
	prev := errors.SetHandler(&errors.LogHandler{Logger: log})
	defer errors.SetHandler(prev)

	app, err := describe.Load(args[0], describe.WithLogger(log))
	if err != nil {
		return err
	}
	v := app.MainView()
	if len(args) == 2 {
		var ok bool
		if v, ok = app.View(args[1]); !ok {
			return fmt.Errorf("unknown view %q", args[1])
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	con := console.New(stdin, stdout, stderr).WithLogger(log.Named("console"))
	log.Debugw("running", "app", app.Context.String(), "view", v.Label())
	return drive(ctx, con, v)
}

// drive runs v on con according to its kind.
func drive(ctx context.Context, con *console.Text, v view.Viewer) error {
	switch v := v.(type) {
	case *view.Switch:
		return con.RunSwitch(ctx, v)
	case *view.Form:
		return con.EditForm(ctx, v)
	case *view.Menu:
		acts := v.Actions()
		if len(acts) == 0 {
			return fmt.Errorf("menu %q has no action", v.Label())
		}
		sw := view.NewSwitch(acts, model.Label(v.Label()), model.InContext(v.Context()))
		return con.RunSwitch(ctx, sw)
	default:
		return fmt.Errorf("cannot run view %q of type %T", v.Label(), v)
	}
}
