// Package app wires a preview session to a self-contained demo host: an
// in-memory directory listing, a console renderer, and logged overlay
// placement. It exists so the behavior can be watched from a terminal
// without an editor.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/glimpse/internal/command"
	"github.com/dshills/glimpse/internal/config"
	"github.com/dshills/glimpse/internal/event"
	"github.com/dshills/glimpse/internal/overlay"
	"github.com/dshills/glimpse/internal/preview"
	"github.com/dshills/glimpse/internal/script"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML settings file.
	ConfigPath string

	// RulesPath is the path to a Lua rules file.
	RulesPath string

	// AutoPreview turns on preview-on-movement for the cursor walk.
	AutoPreview bool

	// Watch enables live reload of the settings file.
	Watch bool

	// Delay overrides the debounce delay in seconds. Zero keeps the
	// configured value.
	Delay float64

	// LogLevel sets the logging verbosity.
	LogLevel string
}

// App drives a demo preview session over a sample directory listing.
type App struct {
	opts Options
	log  *Logger

	cfg      *config.Config
	rules    *script.Rules
	bus      *event.Bus
	buffer   *listingBuffer
	overlays *consoleOverlays
	session  *preview.Session
	registry *command.Registry

	subs   []event.Subscription
	cfgSub *config.ObserverSubscription

	shutdownOnce sync.Once
}

// New creates the application and wires the demo host together.
func New(opts Options) (*App, error) {
	log := NewLogger(LoggerConfig{
		Level:  ParseLogLevel(opts.LogLevel),
		Prefix: "glimpse",
	})

	a := &App{opts: opts, log: log}

	var cfgOpts []config.Option
	if opts.Watch {
		cfgOpts = append(cfgOpts, config.WithWatcher())
	}
	a.cfg = config.New(cfgOpts...)

	if opts.ConfigPath != "" {
		if err := a.cfg.Load(opts.ConfigPath); err != nil {
			a.Shutdown()
			return nil, fmt.Errorf("loading settings: %w", err)
		}
		log.Info("loaded settings from %s", opts.ConfigPath)
	}

	if opts.RulesPath != "" {
		rules, err := script.Load(opts.RulesPath, a.cfg)
		switch {
		case errors.Is(err, script.ErrNoRulesFile):
			log.Warn("rules file %s not found, continuing without rules", opts.RulesPath)
		case err != nil:
			a.Shutdown()
			return nil, fmt.Errorf("loading rules: %w", err)
		default:
			a.rules = rules
			log.Info("loaded rules from %s (%d allow predicates)", opts.RulesPath, rules.AllowCount())
		}
	}

	if opts.AutoPreview {
		if err := a.cfg.Set("preview.autoPreview", true); err != nil {
			a.Shutdown()
			return nil, err
		}
	}
	if opts.Delay > 0 {
		if err := a.cfg.Set("preview.delay", opts.Delay); err != nil {
			a.Shutdown()
			return nil, err
		}
	}

	a.bus = event.NewBus()
	a.buffer = sampleListing()
	a.overlays = newConsoleOverlays(log)

	session, err := preview.NewSession(preview.Deps{
		Buffer:   a.buffer,
		Display:  consoleDisplay{},
		Renderer: consoleRenderer{},
		Overlays: a.overlays,
		Config:   a.cfg,
		Bus:      a.bus,
		Rules:    a.rules,
	})
	if err != nil {
		a.Shutdown()
		return nil, err
	}
	a.session = session

	a.registry = command.NewRegistry()
	a.registry.Register(a.buffer.ID(), session)

	a.watchEvents()
	return a, nil
}

// Run enables the mode, walks the cursor down the listing when auto
// preview is on, demonstrates the manual commands, and disables the mode
// again. It returns an error if any overlay survives the disable.
func (a *App) Run() error {
	p := a.cfg.Preview()
	a.log.Info("preview settings: scale=%.2f delay=%s spacing=%d autoRemove=%v autoPreview=%v",
		p.Scale, p.Delay, p.Spacing, p.AutoRemove, p.AutoPreview)

	bufID := a.buffer.ID()
	a.dispatch(command.CmdEnable, bufID)

	if p.AutoPreview {
		a.walkListing(p.Delay)

		// Turn movement-driven previews off for the manual half of
		// the demo, showing the live setting flip.
		if err := a.cfg.Set("preview.autoPreview", false); err != nil {
			return err
		}
	}

	a.demoManualCommands()

	a.dispatch(command.CmdDisable, bufID)

	placed, destroyed, live := a.overlays.counts()
	a.log.Info("session summary: %d placed, %d removed, %d live", placed, destroyed, live)
	if live != 0 {
		return fmt.Errorf("%d overlays still live after disable", live)
	}
	return nil
}

// walkListing moves the cursor through every line, pausing long enough
// for the debounce timer to fire.
func (a *App) walkListing(delay time.Duration) {
	grace := delay + 50*time.Millisecond
	for line := 0; line < a.buffer.lineCount(); line++ {
		pos := overlay.Position{Line: uint32(line)}
		a.buffer.moveTo(a.bus, pos)
		a.log.Debug("cursor on %q", a.buffer.lineText(pos.Line))
		time.Sleep(grace)
	}
}

// demoManualCommands exercises show, toggle, hide, and the error path on
// hand-picked listing lines.
func (a *App) demoManualCommands() {
	bufID := a.buffer.ID()

	a.buffer.moveTo(a.bus, overlay.Position{Line: 1})
	a.dispatch(command.CmdShow, bufID)
	a.dispatch(command.CmdToggle, bufID)
	a.dispatch(command.CmdToggle, bufID)

	// Excluded extension: a quiet no-op.
	a.buffer.moveTo(a.bus, overlay.Position{Line: 3})
	a.dispatch(command.CmdShow, bufID)

	// Render failure: any preview cleared by autoRemove stays gone and
	// the error surfaces through the command result.
	a.buffer.moveTo(a.bus, overlay.Position{Line: 5})
	a.dispatch(command.CmdShow, bufID)

	a.dispatch(command.CmdHideAll, bufID)
}

// dispatch runs a command and logs its outcome.
func (a *App) dispatch(name, bufID string) {
	res := a.registry.Dispatch(name, bufID)
	switch {
	case res.IsError():
		a.log.Error("%s: %v", name, res.Err)
	case res.Message != "":
		a.log.Info("%s: %s [%s]", name, res.Message, res.Status)
	default:
		a.log.Info("%s: %s", name, res.Status)
	}
}

// Shutdown releases the session, rules, and settings resources. Safe to
// call more than once.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		for _, sub := range a.subs {
			sub.Cancel()
		}
		a.subs = nil

		if a.cfgSub != nil {
			a.cfgSub.Unsubscribe()
			a.cfgSub = nil
		}
		if a.session != nil {
			a.session.Close()
			a.session = nil
		}
		if a.rules != nil {
			_ = a.rules.Close()
			a.rules = nil
		}
		if a.cfg != nil {
			a.cfg.Close()
			a.cfg = nil
		}
	})
}
