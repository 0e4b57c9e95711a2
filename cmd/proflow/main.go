// cmd/proflow/main.go
//
// Entry point for the proflow dashboard. Initializes the .proflow folder
// in the current directory, wires the store, engine, analyzer and logbook
// together, and hands control to the TUI.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/proflow/internal/analysis"
	"github.com/kingrea/proflow/internal/config"
	"github.com/kingrea/proflow/internal/logbook"
	"github.com/kingrea/proflow/internal/seed"
	"github.com/kingrea/proflow/internal/store"
	"github.com/kingrea/proflow/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitProflowDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .proflow directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logbook.New(cfg.SessionLogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session log: %v\n", err)
		os.Exit(1)
	}
	log.Info("Session started in %s", cwd)

	st := store.New()
	if cfg.SeedDemoData() {
		// The store prepends on create, so insert in reverse to keep the
		// fixture order on screen.
		fixtures := seed.Features()
		for i := len(fixtures) - 1; i >= 0; i-- {
			st.Create(fixtures[i])
		}
		log.Info("Seeded %d demo features", len(fixtures))
	}

	analyzer, err := analysis.New(cfg.AnalysisAPIKey(), cfg.AnalysisModel(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up analyzer: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewApp(cfg, st, analyzer, log),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
