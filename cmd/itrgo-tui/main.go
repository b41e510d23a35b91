package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/itrgo/internal/app"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/tui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional settings file; otherwise itrgo.yaml is looked up as usual
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid settings: %v\n", err)
		return 1
	}

	opts := tui.Options{
		Theme:     settings.UI.Theme,
		StoreInfo: app.StoreInfo(settings),
	}

	// The calculator still works when the store cannot be opened.
	// No logger: anything written to the terminal would corrupt the screen.
	profiles, err := app.OpenProfiles(context.Background(), settings, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: profile store unavailable: %v\n", err)
		opts.StoreInfo += " (unavailable)"
	} else {
		defer profiles.Close()
		opts.Profiles = profiles
	}

	p := tea.NewProgram(tui.NewModel(opts), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return 1
	}
	return 0
}
