package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vanderheijden86/workdeck/internal/datasource"
	"github.com/vanderheijden86/workdeck/pkg/config"
	"github.com/vanderheijden86/workdeck/pkg/export"
	"github.com/vanderheijden86/workdeck/pkg/ui"
	"github.com/vanderheijden86/workdeck/pkg/version"
	"github.com/vanderheijden86/workdeck/pkg/watcher"
)

func main() {
	dataPath := flag.String("data", "", "JSON issue file (default: the built-in sample project)")
	noGate := flag.Bool("no-gate", false, "Skip the password gate")
	noWatch := flag.Bool("no-watch", false, "Disable live reload when the data file changes")
	exportDir := flag.String("export-charts", "", "Write analytics charts to a directory and exit")
	exportFormat := flag.String("export-format", "svg", "Chart format for --export-charts: svg, png, or both")
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	versionFlag := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: wd [options]")
		fmt.Println("\nA terminal dashboard for grouped issue tracking and selection analytics.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("wd %s\n", version.Version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		// Non-fatal: continue with defaults.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *noGate {
		cfg.Gate.Disabled = true
	}
	if *noWatch {
		cfg.Data.Watch = false
	}

	col, err := datasource.Load(cfg.Data.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading issues: %v\n", err)
		os.Exit(1)
	}

	if *exportDir != "" {
		written, err := export.Charts(col.Issues, export.Options{
			Dir:    *exportDir,
			Format: *exportFormat,
			Title:  "workdeck",
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Chart export failed: %v\n", err)
			os.Exit(1)
		}
		for _, p := range written {
			fmt.Println(p)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "wd needs a terminal; use --export-charts for non-interactive output")
		os.Exit(1)
	}

	// Only real files can be watched; the built-in sample has no path.
	var w *watcher.Watcher
	if cfg.Data.Watch && col.Path != "" {
		w, err = watcher.New(col.Path)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
			w = nil
		} else {
			defer w.Stop()
		}
	}

	if err := runTUIProgram(ui.New(cfg, col, w), cfg.UI.MouseEnabled()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}

func runTUIProgram(m ui.Model, mouse bool) error {
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
