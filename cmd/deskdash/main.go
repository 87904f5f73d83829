// Package main is the entry point for the deskdash application.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/deskdash/internal/config"
	"github.com/hy4ri/deskdash/internal/probe"
	"github.com/hy4ri/deskdash/internal/storage"
	"github.com/hy4ri/deskdash/internal/tui"
)

const version = "0.1.0"

const helpText = `deskdash - Personal terminal dashboard

USAGE:
    deskdash [OPTIONS]

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file
    --log FILE      Append debug logging to FILE
    --calendar      Start on the calendar screen
    --grades        Start on the grade tracker
    --money         Start on the money tracker

CONFIGURATION:
    Config file: ~/.config/deskdash/config.yaml

KEYBINDINGS:
    Screens:
        d           Dashboard
        c           Calendar
        g           Grade tracker
        m           Money tracker

    Dashboard:
        Left/Right  Adjust brightness
        Up/Down     Adjust volume

    Calendar:
        Up/Down     Next/previous month
        Left/Right  Move day (or event, in the popup)
        Enter       Toggle event popup
        y           Copy event

    Trackers:
        i           Add entry
        s           Search (money)
        Enter       Submit form
        Esc         Close form
        y           Copy transaction

    Other:
        q           Quit
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		logFile     string
		calendar    bool
		grades      bool
		money       bool
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.StringVar(&logFile, "log", "", "Append debug logging to this file")
	flag.BoolVar(&calendar, "calendar", false, "Start on the calendar screen")
	flag.BoolVar(&grades, "grades", false, "Start on the grade tracker")
	flag.BoolVar(&money, "money", false, "Start on the money tracker")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("deskdash version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	if err := setupLogging(logFile); err != nil {
		return err
	}

	initialScreen := ""
	if calendar {
		initialScreen = "calendar"
	} else if grades {
		initialScreen = "grades"
	} else if money {
		initialScreen = "money"
	}

	return runApp(initialScreen)
}

// setupLogging routes the standard logger to a file, or discards it. A TUI
// cannot share stderr with its own frames.
func setupLogging(path string) error {
	if path == "" {
		log.SetOutput(nullWriter{})
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

// createConfigTemplate writes the default configuration to disk.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// runApp starts the main TUI application.
func runApp(initialScreen string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return fmt.Errorf("failed to resolve database path: %w", err)
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	probes := probe.New(cfg.Commands)

	app := tui.NewApp(store, probes, cfg, initialScreen)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
