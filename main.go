package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"recipebox/cmd"
	"recipebox/internal/api"
	"recipebox/internal/form"
	"recipebox/internal/store"
	"recipebox/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if errors.Is(err, cmd.ErrVersionRequested) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := config.OpenLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if config.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "recipebox"), slog.String("version", version))
	slog.SetDefault(logger)

	client := api.NewClient(api.Options{
		Origin:      config.APIOrigin,
		RecipesPath: config.RecipesPath,
		UploadPath:  config.UploadPath,
		Timeout:     config.Timeout,
	})
	logger.Info("starting", "api", client.Origin())

	recipes := store.New(client, client.Origin(), logger)
	submitter := form.NewSubmitter(client, client.Origin())

	// Create and run Bubble Tea app
	p := tea.NewProgram(ui.New(ui.Options{
		Store:     recipes,
		Submitter: submitter,
		Logger:    logger,
		ConfigDir: config.ConfigDir,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("app exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
