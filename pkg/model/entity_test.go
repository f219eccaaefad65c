package model

import (
	"path/filepath"
	"testing"
)

func TestEntitySettersNotify(t *testing.T) {
	obs := &changeRecorder{}
	v := NewVar(1, Label("Count"))
	v.AddObserver(obs)

	ctx := NewContext("app")
	v.SetLabel("Counter")
	v.SetHelp("number of clicks")
	v.SetIcon(Stock(AddIcon))
	v.SetContext(ctx)

	if len(obs.changed) != 4 {
		t.Fatalf("got %d change notifications, want 4", len(obs.changed))
	}
	if obs.changed[0] != Object(v) {
		t.Errorf("observer received %T, want the *Var itself", obs.changed[0])
	}
	if v.Label() != "Counter" || v.Help() != "number of clicks" || v.Icon() != Stock(AddIcon) || v.Context() != ctx {
		t.Error("entity fields not updated")
	}
}

func TestEntityChangeDoesNotReachVarObservers(t *testing.T) {
	r := &recorder{}
	v := NewVar(1)
	v.AddObserver(r)
	v.SetLabel("x")
	if r.calls != 0 {
		t.Errorf("VarObserver got %d calls on label change, want 0", r.calls)
	}
}

func TestEntityCopyTo(t *testing.T) {
	ctx := NewContext("app")
	src := NewEntity(Label("Quit"), Help("leave"), Icon(Stock(QuitIcon)), InContext(ctx))
	src.AddObserver(&changeRecorder{})

	dst := NewEntity()
	src.CopyTo(dst)

	if dst.Label() != "Quit" || dst.Help() != "leave" || dst.Icon() != Stock(QuitIcon) {
		t.Error("CopyTo did not copy label, help and icon")
	}
	if dst.Context() != ctx {
		t.Error("CopyTo should share the context")
	}
	if dst.ObserverCount() != 0 {
		t.Error("CopyTo should not copy observers")
	}
}

func TestStockIcon(t *testing.T) {
	tests := []struct {
		name string
		want StockIcon
		ok   bool
	}{
		{"quit", QuitIcon, true},
		{" CDROM ", CDROMIcon, true},
		{"none", NoIcon, false},
		{"rocket", NoIcon, false},
	}
	for _, tt := range tests {
		got, ok := ParseStockIcon(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStockIcon(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	if got := Stock(AboutIcon).String(); got != "stock:about" {
		t.Errorf("Stock(AboutIcon).String() = %q", got)
	}
	if !(IconRef{}).IsZero() || NamedIcon("logo.png").IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestContextValidate(t *testing.T) {
	tests := []struct {
		ctx     *Context
		wantErr bool
	}{
		{NewContext("hello"), false},
		{NewContext("hello", WithVersion("v1.2.3")), false},
		{NewContext("hello", WithVersion("1.2.3")), true},
		{NewContext("  "), true},
	}
	for _, tt := range tests {
		err := tt.ctx.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.ctx, err, tt.wantErr)
		}
	}
}

func TestContextResolve(t *testing.T) {
	dir := t.TempDir()
	ctx := NewContext("app", WithResourcePath(dir))

	got, ok := ctx.Resolve("icons/quit.png")
	if !ok || got != filepath.Join(dir, "icons", "quit.png") {
		t.Errorf("Resolve = %q, %v", got, ok)
	}
	if _, ok := NewContext("bare").Resolve("x.png"); ok {
		t.Error("Resolve without resource path should fail")
	}
	abs := filepath.Join(dir, "abs.png")
	if got, ok := NewContext("bare").Resolve(abs); !ok || got != abs {
		t.Errorf("Resolve(abs) = %q, %v", got, ok)
	}
}

func TestContextAdopt(t *testing.T) {
	app := NewContext("app")
	lib := NewContext("lib")

	orphan := NewAction(nil, Label("orphan"))
	owned := NewAction(nil, Label("owned"), InContext(lib))

	if got := app.Adopt(orphan); got != app {
		t.Errorf("Adopt(orphan) = %v, want app", got)
	}
	if got := app.Adopt(owned); got != lib {
		t.Errorf("Adopt(owned) = %v, want lib", got)
	}
	if app.ID() == lib.ID() {
		t.Error("contexts should have distinct ids")
	}
}
