package cmd

import (
	"fmt"

	"github.com/rustyeddy/chartlog/config"
	"github.com/rustyeddy/chartlog/entry"
	"github.com/rustyeddy/chartlog/internal/session"
	"github.com/spf13/cobra"
)

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Capture the full screen once",
	Long: `Save the whole screen and append an entry with ticker, price and note.

Example:
  chartlog quick --ticker XAUUSD --price 2315.40 --note "rejected at resistance"`,
	Args: cobra.NoArgs,
	RunE: runQuick,
}

var (
	quickImage  string
	quickTicker string
	quickPrice  string
	quickNote   string
)

func init() {
	rootCmd.AddCommand(quickCmd)

	quickCmd.Flags().StringVarP(&quickImage, "image", "i", "", "image file to use instead of the screen")
	quickCmd.Flags().StringVarP(&quickTicker, "ticker", "t", "", "ticker or instrument (required)")
	quickCmd.Flags().StringVarP(&quickPrice, "price", "p", "", "price level")
	quickCmd.Flags().StringVarP(&quickNote, "note", "n", "", "note")
	quickCmd.MarkFlagRequired("ticker")
}

func runQuick(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(config.ModeQuick)
	if err != nil {
		return err
	}
	log, err := consoleLogger(cfg)
	if err != nil {
		return err
	}

	s, err := session.Open(cfg, log, quickImage)
	if err != nil {
		return err
	}
	defer s.Close()

	img, err := s.Capturer.CaptureFullScreen()
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	res, err := s.Record(img, entry.Input{Ticker: quickTicker, Price: quickPrice, Note: quickNote})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s %s -> %s\n", res.Entry.Ticker, res.Entry.Date(), res.Entry.Clock(), res.Entry.ImagePath)
	return nil
}
