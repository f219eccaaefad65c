package cmd

import (
	"fmt"

	"github.com/go-drift/semkit/pkg/describe"
	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/resource"
)

func init() {
	RegisterCommand(&Command{
		Name:  "check",
		Short: "Validate application descriptions",
		Long: `Load each description and report its problems.

Named icons are resolved against the resource path of the application;
missing icons are reported as warnings.

Usage:
  semkit check app.yaml
  semkit check a.yaml b.yaml`,
		Usage: "semkit check <file>...",
		Run:   runCheck,
	})
}

func runCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a description file is required\n\nUsage: semkit check <file>...")
	}

	failed := 0
	for _, path := range args {
		app, err := describe.Load(path)
		if err != nil {
			fmt.Fprintf(stdout, "FAIL %v\n", err)
			failed++
			continue
		}
		for _, w := range iconWarnings(app) {
			fmt.Fprintf(stdout, "WARN %s: %s\n", path, w)
		}
		fmt.Fprintf(stdout, "ok   %s (%s: %d vars, %d actions, %d views)\n",
			path, app.Context, len(app.VarNames()), len(app.ActionNames()), len(app.ViewNames()))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d descriptions failed", failed, len(args))
	}
	return nil
}

// iconWarnings lists the named icons of app that do not resolve to a file.
func iconWarnings(app *describe.App) []string {
	var objects []model.Object
	for _, name := range app.VarNames() {
		v, _ := app.Var(name)
		objects = append(objects, v)
	}
	for _, name := range app.ActionNames() {
		a, _ := app.Action(name)
		objects = append(objects, a)
	}
	for _, name := range app.ViewNames() {
		v, _ := app.View(name)
		objects = append(objects, v)
	}

	var warnings []string
	for _, o := range objects {
		icon := o.Icon()
		if icon.IsZero() || icon.IsStock() {
			continue
		}
		if _, err := resource.Load(o.Context(), icon); err != nil {
			warnings = append(warnings, fmt.Sprintf("icon of %q: %v", o.Label(), err))
		}
	}
	return warnings
}
