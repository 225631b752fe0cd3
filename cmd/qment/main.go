package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/qment/internal/cmd"
	"github.com/gravitrone/qment/internal/config"
	"github.com/gravitrone/qment/internal/document"
	"github.com/gravitrone/qment/internal/editor"
	"github.com/gravitrone/qment/internal/logging"
	"github.com/gravitrone/qment/internal/store"
	"github.com/gravitrone/qment/internal/ui"
)

func main() {
	root := &cobra.Command{
		Use:   "qment",
		Short: "Qment - question bank editor",
		Long:  "Qment: build question banks with numbered questions, tag groups and text sections.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.PresetCmd())
	root.AddCommand(cmd.InspectCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI() error {
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return errors.New("qment needs an interactive terminal")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	app := ui.NewApp(cfg, editor.NewPresetRef(loadPreset(cfg, logger)), logger)
	logger.Info("qment started", "preset", cfg.PresetPath, "recent", cfg.RecentProject)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// loadConfig returns the saved config, or the defaults on first run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// loadPreset reads the configured preset, falling back to the starter
// preset when none is set or it cannot be read.
func loadPreset(cfg *config.Config, logger *slog.Logger) *document.Preset {
	if cfg.PresetPath == "" {
		return store.StarterPreset(cfg.DefaultGroups)
	}
	p, err := store.LoadPreset(cfg.PresetPath)
	if err != nil {
		logger.Warn("preset unavailable, using starter preset", "path", cfg.PresetPath, "err", err)
		return store.StarterPreset(cfg.DefaultGroups)
	}
	return p
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
