// Command chartlogd registers the global capture hotkey and runs the capture
// UI in the terminal. It is the only chartlog binary that connects to the
// window system for hotkeys.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rustyeddy/chartlog/hotkey"
	"github.com/rustyeddy/chartlog/hotkey/osbind"
	"github.com/rustyeddy/chartlog/internal/logging"
	"github.com/rustyeddy/chartlog/internal/session"
	"github.com/rustyeddy/chartlog/tui"
	"github.com/spf13/cobra"
	"golang.design/x/hotkey/mainthread"
)

var rootCmd = &cobra.Command{
	Use:   "chartlogd",
	Short: "Wait for the capture hotkey",
	Long: `Register the global hotkey and show the capture UI in this terminal.

Every press freezes the screen. In snip mode drag a rectangle with the mouse,
in quick mode the whole screen is kept. Then fill in the ticker and note and
press Enter to append the entry. Esc cancels at any point.

Logs go to the configured log file while the UI is running.

Example:
  chartlogd --mode quick`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runDaemon,
}

var (
	cfgFile  string
	logLevel string
	runMode  string
)

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./"+session.DefaultConfigFile+" if present)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&runMode, "mode", "m", "", "capture mode: snip or quick (default from config)")
}

func main() {
	code := 0
	// Hotkey events on macOS are delivered through the main thread's run loop.
	mainthread.Init(func() {
		if err := rootCmd.Execute(); err != nil {
			code = 1
		}
	})
	os.Exit(code)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := session.LoadConfig(cfgFile, runMode, logLevel)
	if err != nil {
		return err
	}

	combo, err := hotkey.Parse(cfg.Hotkey)
	if err != nil {
		return err
	}

	log, closer, err := logging.SetupFile(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := session.Open(cfg, log, "")
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(tui.Deps{
		Mode:        cfg.Mode,
		Capturer:    s.Capturer,
		Store:       s.Store,
		Flow:        s.Flow,
		TablePath:   cfg.Journal.Path,
		Notifier:    s.Notifier(),
		Log:         log,
		HotkeyLabel: combo.String(),
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	p := tui.Program(ctx, app)
	wait, err := hotkey.NewListener(combo, osbind.New, log).Listen(ctx, func() {
		p.Send(tui.TriggerMsg{})
	})
	if err != nil {
		return err
	}

	log.Info().Str("mode", cfg.Mode).Str("journal", cfg.Journal.Path).Msg("chartlogd started")
	_, err = p.Run()
	cancel()
	wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("ui: %w", err)
	}
	log.Info().Int("saved", app.Saved()).Msg("chartlogd stopped")
	fmt.Fprintf(cmd.OutOrStdout(), "%d entries saved to %s\n", app.Saved(), cfg.Journal.Path)
	return nil
}
