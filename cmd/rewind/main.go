// Package main is the entry point for the rewind demo driver.
//
// With no arguments it starts the interactive history explorer. A Lua
// script or YAML scenario can be run instead, optionally re-running on
// file change.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/dshills/rewind/history"
	"github.com/dshills/rewind/internal/config"
	"github.com/dshills/rewind/internal/objects"
	"github.com/dshills/rewind/internal/scenario"
	"github.com/dshills/rewind/internal/script"
	"github.com/dshills/rewind/internal/tui"
	"github.com/dshills/rewind/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath   string
	scriptPath   string
	scenarioPath string
	watch        bool
	showIDs      bool
	showVersion  bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("rewind %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.showIDs {
		cfg.UI.ShowIDs = true
	}

	history.Enable()

	switch {
	case opts.scriptPath != "":
		return runScript(opts, cfg)
	case opts.scenarioPath != "":
		return runScenario(opts, cfg)
	default:
		return runExplorer(cfg)
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Run a Lua session script")
	flag.StringVar(&opts.scenarioPath, "scenario", "", "Run a YAML scenario")
	flag.BoolVar(&opts.watch, "watch", false, "Re-run the script or scenario on change")
	flag.BoolVar(&opts.showIDs, "ids", false, "Show record ids in the explorer")
	flag.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flag.Parse()
	return opts
}

// runScript executes the Lua script once, or repeatedly in watch mode.
func runScript(opts options, cfg config.Config) int {
	runOnce := func() int {
		store := objects.NewSetStore()
		engine := script.New(cfg.Script.Timeout.Value())
		defer engine.Close()
		script.Bind(engine, store)

		if err := engine.DoFile(opts.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		fmt.Printf("%d object(s) after %s\n", store.Len(), opts.scriptPath)
		if dump := store.Context().Dump(1); dump != "" {
			fmt.Print(dump)
		}
		return 0
	}

	if !opts.watch {
		return runOnce()
	}
	return watchAndRun(opts.scriptPath, cfg, runOnce)
}

// runScenario runs the YAML scenario once, or repeatedly in watch mode.
// The path may name a single document or a directory of them; bare names
// are also resolved against the configured scenario directory.
func runScenario(opts options, cfg config.Config) int {
	path := resolveScenarioPath(opts.scenarioPath, cfg.Scenario.Dir)

	runOnce := func() int {
		paths, err := scenarioFiles(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}

		code := 0
		for _, p := range paths {
			sc, err := scenario.LoadFile(p)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				code = 1
				continue
			}

			report := scenario.Run(sc)
			fmt.Println(report)
			for _, failure := range report.Failures {
				fmt.Printf("  %s\n", failure)
			}
			if !report.OK() {
				code = 1
			}
		}
		return code
	}

	if !opts.watch {
		return runOnce()
	}
	return watchAndRun(path, cfg, runOnce)
}

// resolveScenarioPath falls back to the scenario directory for bare
// names that do not exist as given.
func resolveScenarioPath(path, dir string) string {
	if _, err := os.Stat(path); err == nil || filepath.IsAbs(path) {
		return path
	}
	alt := filepath.Join(dir, path)
	if _, err := os.Stat(alt); err == nil {
		return alt
	}
	return path
}

// scenarioFiles expands a directory into its YAML documents, sorted.
func scenarioFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(path, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", path)
	}
	return paths, nil
}

// watchAndRun runs fn, then re-runs it whenever path changes, until
// interrupted.
func watchAndRun(path string, cfg config.Config, fn func() int) int {
	w, err := watcher.New(cfg.Watch.Debounce.Value())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	fn()
	fmt.Printf("watching %s\n", path)

	for {
		select {
		case <-signals:
			return 0
		case changed := <-w.Events():
			fmt.Printf("%s changed\n", changed)
			fn()
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)
		}
	}
}

// runExplorer starts the interactive TUI on a fresh store.
func runExplorer(cfg config.Config) int {
	store := objects.NewSetStore()

	app, err := tui.New(store, cfg.UI.ShowIDs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
