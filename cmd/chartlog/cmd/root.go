package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/chartlog/config"
	"github.com/rustyeddy/chartlog/internal/logging"
	"github.com/rustyeddy/chartlog/internal/session"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chartlog",
	Short: "Capture chart screenshots into a trading journal",
	Long: `Chartlog turns a chart capture into a journal entry.

Drag a rectangle over the chart (snip) or take the whole screen (quick),
give the ticker and a note, and the entry is appended to a spreadsheet, CSV
file or SQLite database next to the saved PNG.

The global hotkey daemon is the separate chartlogd binary.

Commands:
  snip     - Capture a region once
  quick    - Capture the full screen once
  journal  - List journal entries
  config   - Generate or validate configuration files`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := logging.Setup(logLevel, os.Stderr)
		return err
	},
}

var (
	cfgFile  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./"+session.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
}

func loadConfig(mode string) (*config.Config, error) {
	return session.LoadConfig(cfgFile, mode, logLevel)
}

// consoleLogger re-applies the configured level to the stderr logger.
func consoleLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logging.Setup(cfg.Log.Level, os.Stderr)
}
