// Package main is the entry point for the glimpse preview demo.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/glimpse/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
		os.Exit(1)
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to TOML settings file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to TOML settings file (shorthand)")
	flag.StringVar(&opts.RulesPath, "rules", "", "Path to Lua rules file")
	flag.StringVar(&opts.RulesPath, "r", "", "Path to Lua rules file (shorthand)")
	flag.BoolVar(&opts.AutoPreview, "auto", false, "Preview images as the cursor moves")
	flag.BoolVar(&opts.AutoPreview, "a", false, "Preview images as the cursor moves (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the settings file when it changes")
	flag.Float64Var(&opts.Delay, "delay", 0, "Debounce delay in seconds (0 keeps the configured value)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Glimpse - inline image previews for listing buffers\n\n")
		fmt.Fprintf(os.Stderr, "Usage: glimpse [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glimpse                     Walk the sample listing with manual commands\n")
		fmt.Fprintf(os.Stderr, "  glimpse -a                  Preview images as the cursor moves\n")
		fmt.Fprintf(os.Stderr, "  glimpse -c glimpse.toml     Load settings from a file\n")
		fmt.Fprintf(os.Stderr, "  glimpse -a -r rules.lua     Apply Lua rules before walking\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Glimpse %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
