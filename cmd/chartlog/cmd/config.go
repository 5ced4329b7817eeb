package cmd

import (
	"fmt"

	"github.com/rustyeddy/chartlog/config"
	"github.com/rustyeddy/chartlog/hotkey"
	"github.com/rustyeddy/chartlog/internal/session"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage chartlog configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  chartlog config init --mode quick -o chartlog.yaml
  chartlog config validate -f chartlog.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with the defaults of a capture mode.

Example:
  chartlog config init -o chartlog.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file is valid and can be loaded.

Example:
  chartlog config validate -f chartlog.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

var (
	configInitOutput   string
	configInitMode     string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", session.DefaultConfigFile, "output config file path (.yaml or .json)")
	configInitCmd.Flags().StringVarP(&configInitMode, "mode", "m", config.ModeSnip, "capture mode: snip or quick")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to config file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultFor(configInitMode)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  chartlogd --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if _, err := hotkey.Parse(cfg.Hotkey); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Mode: %s (hotkey %s)\n", cfg.Mode, cfg.Hotkey)
	fmt.Fprintf(out, "  Images: %s\n", cfg.Capture.ImageFolder)
	fmt.Fprintf(out, "  Journal: %s (%s)\n", cfg.Journal.Path, cfg.Journal.Format)
	return nil
}
