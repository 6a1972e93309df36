package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"mplan/internal/store"
	"mplan/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("mplan %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	app := ui.NewApp(store.New())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
