package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/qment/internal/config"
	"github.com/gravitrone/qment/internal/document"
	"github.com/gravitrone/qment/internal/store"
	"github.com/gravitrone/qment/internal/ui/components"
)

// PresetCmd returns the `qment preset` command group.
func PresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Create and inspect tag presets",
	}
	cmd.AddCommand(presetInitCmd())
	cmd.AddCommand(presetShowCmd())
	return cmd
}

func presetInitCmd() *cobra.Command {
	var (
		groups []string
		force  bool
		use    bool
	)
	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write a starter preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if len(groups) == 0 {
				groups = defaultGroups()
			}
			if err := store.SavePreset(path, store.StarterPreset(groups)); err != nil {
				return fmt.Errorf("write preset: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "preset written to %s\n", path)

			if !use {
				return nil
			}
			cfg, err := config.Load()
			if errors.Is(err, os.ErrNotExist) {
				cfg, err = config.Default(), nil
			}
			if err != nil {
				return err
			}
			cfg.PresetPath = path
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), "preset set as default")
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&groups, "groups", "g", nil, "groups every new question starts with")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&use, "use", false, "make this the preset loaded at startup")
	return cmd
}

func presetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Print a preset's groups and suggestions",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, err := store.LoadPreset(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), components.Table("Preset", presetRows(p), 120))
			return nil
		},
	}
}

func presetRows(p *document.Preset) []components.TableRow {
	rows := []components.TableRow{{Label: "Default groups", Value: joinOrDash(p.DefaultGroups())}}
	for _, group := range sortedKeys(p.Tags) {
		rows = append(rows, components.TableRow{Label: group, Value: joinOrDash(p.Suggestions(group))})
	}
	return rows
}

// defaultGroups reads the configured starter groups, if any.
func defaultGroups() []string {
	cfg, err := config.Load()
	if err != nil {
		return config.Default().DefaultGroups
	}
	return cfg.DefaultGroups
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
