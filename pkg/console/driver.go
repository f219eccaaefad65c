package console

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-drift/semkit/pkg/model"
	"github.com/go-drift/semkit/pkg/validate"
	"github.com/go-drift/semkit/pkg/view"
)

// Quitter is implemented by console handles able to stop their driver loop.
type Quitter interface {
	Quit()
}

// QuitAction returns an action stopping the driver it is applied in.
func QuitAction(opts ...model.Option) *model.Action {
	defaults := []model.Option{model.Label("Quit"), model.Icon(model.Stock(model.QuitIcon))}
	return model.NewAction(func(con any) {
		if q, ok := con.(Quitter); ok {
			q.Quit()
		}
	}, append(defaults, opts...)...)
}

// RunSwitch shows sw and repeatedly asks the user to pick one of its
// enabled actions, until an action calls Quit, the user cancels, or ctx is
// done. Cancelling is not an error.
func (t *Text) RunSwitch(ctx context.Context, sw *view.Switch) error {
	sw.Show()
	defer sw.Hide()

	for !t.quit {
		if err := ctx.Err(); err != nil {
			return err
		}
		enabled := sw.Enabled()
		if len(enabled) == 0 {
			return fmt.Errorf("console: no action available in %q", sw.Label())
		}
		i, err := t.AskChoice(sw.Label(), labels(enabled), -1, actionsHelp(enabled))
		if stderrors.Is(err, ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if !model.Invoke(enabled[i], t) {
			t.Error(fmt.Sprintf("%s failed", enabled[i].Label()))
		}
	}
	return nil
}

// EditForm shows f and asks a value for each of its variables, then lets
// the user pick one of its enabled actions, if any. An empty answer keeps
// the current value. Records and collections are displayed, not edited.
func (t *Text) EditForm(ctx context.Context, f *view.Form) error {
	f.Show()
	defer f.Hide()

	for _, v := range f.Vars() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.editVar(v); err != nil {
			return err
		}
	}

	var enabled []model.AbstractAction
	for _, a := range f.Actions() {
		if a.Check() {
			enabled = append(enabled, a)
		}
	}
	if len(enabled) == 0 {
		return nil
	}
	i, err := t.AskChoice(f.Label(), labels(enabled), 0, actionsHelp(enabled))
	if err != nil {
		return err
	}
	model.Invoke(enabled[i], t)
	return nil
}

func (t *Text) editVar(v model.AbstractVar) error {
	typ := v.Type()
	switch {
	case typ.IsStandard(model.Bool):
		cur, _ := v.Get().(bool)
		b, err := t.AskYesNo(v.Label(), cur, v.Help())
		if err != nil {
			return err
		}
		v.Set(b)
		return nil
	case typ.IsEnum():
		enum := typ.(*model.EnumType)
		values := enum.Values()
		names := make([]string, len(values))
		for i, ev := range values {
			names[i] = enum.AsText(ev.Value())
		}
		i, err := t.AskChoice(v.Label(), names, enum.IndexOf(v.Get()), v.Help())
		if err != nil {
			return err
		}
		v.Set(values[i].Value())
		return nil
	case typ.IsRecord(), typ.IsCollect():
		t.Info(fmt.Sprintf("%s: %s", v.Label(), typ.AsText(v.Get())))
		return nil
	}

	current := typ.AsText(v.Get())
	for {
		answer, err := t.AskText(v.Label(), current)
		if err != nil {
			return err
		}
		if answer == current {
			return nil
		}
		val, err := validate.Parse(typ, answer)
		if err != nil {
			t.Error(err.Error())
			continue
		}
		v.Set(val)
		return nil
	}
}

func labels(acts []model.AbstractAction) []string {
	out := make([]string, len(acts))
	for i, a := range acts {
		out[i] = a.Label()
	}
	return out
}

func actionsHelp(acts []model.AbstractAction) string {
	var b strings.Builder
	for _, a := range acts {
		if a.Help() == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", a.Label(), a.Help())
	}
	return b.String()
}
