package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	app, err := New(Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if app.cfg == nil {
		t.Error("expected cfg to be initialized")
	}
	if app.bus == nil {
		t.Error("expected bus to be initialized")
	}
	if app.buffer == nil {
		t.Error("expected buffer to be initialized")
	}
	if app.session == nil {
		t.Error("expected session to be initialized")
	}
	if app.registry == nil {
		t.Error("expected registry to be initialized")
	}
}

func TestNew_ShutdownIdempotent(t *testing.T) {
	app, err := New(Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	app.Shutdown()
	app.Shutdown()
	app.Shutdown()
}

func TestNew_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glimpse.toml")
	toml := "[preview]\nscale = 0.25\nautoRemove = false\n"
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}

	app, err := New(Options{ConfigPath: path, LogLevel: "error"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	p := app.cfg.Preview()
	if p.Scale != 0.25 {
		t.Errorf("Scale = %v, expected 0.25", p.Scale)
	}
	if p.AutoRemove {
		t.Error("expected autoRemove false from the settings file")
	}
}

func TestNew_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glimpse.toml")
	if err := os.WriteFile(path, []byte("[preview\nbroken"), 0o644); err != nil {
		t.Fatalf("writing settings file: %v", err)
	}

	if _, err := New(Options{ConfigPath: path, LogLevel: "error"}); err == nil {
		t.Error("expected New() to fail on a malformed settings file")
	}
}

func TestNew_WithRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.lua")
	lua := `glimpse.set("preview.scale", 0.75)`
	if err := os.WriteFile(path, []byte(lua), 0o644); err != nil {
		t.Fatalf("writing rules file: %v", err)
	}

	app, err := New(Options{RulesPath: path, LogLevel: "error"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if app.rules == nil {
		t.Fatal("expected rules to be loaded")
	}
	if got := app.cfg.Preview().Scale; got != 0.75 {
		t.Errorf("Scale = %v, expected 0.75 from the rules file", got)
	}
}

func TestNew_MissingRulesFile(t *testing.T) {
	app, err := New(Options{
		RulesPath: filepath.Join(t.TempDir(), "absent.lua"),
		LogLevel:  "error",
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if app.rules != nil {
		t.Error("expected no rules when the file is missing")
	}
}

func TestNew_OptionOverrides(t *testing.T) {
	app, err := New(Options{AutoPreview: true, Delay: 0.05, LogLevel: "error"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	p := app.cfg.Preview()
	if !p.AutoPreview {
		t.Error("expected autoPreview on")
	}
	if p.Delay != 50*time.Millisecond {
		t.Errorf("Delay = %s, expected 50ms", p.Delay)
	}
}

func TestRun(t *testing.T) {
	app, err := New(Options{LogLevel: "error"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if err := app.Run(); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	placed, destroyed, live := app.overlays.counts()
	if placed != 2 || destroyed != 2 || live != 0 {
		t.Errorf("counts = (%d, %d, %d), expected (2, 2, 0)", placed, destroyed, live)
	}
}

func TestRun_AutoPreview(t *testing.T) {
	app, err := New(Options{AutoPreview: true, Delay: 0.01, LogLevel: "error"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer app.Shutdown()

	if err := app.Run(); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	placed, _, live := app.overlays.counts()
	if placed == 0 {
		t.Error("expected the cursor walk to place at least one overlay")
	}
	if live != 0 {
		t.Errorf("live = %d after disable, expected 0", live)
	}
}
