package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rustyeddy/chartlog/config"
	"github.com/rustyeddy/chartlog/entry"
	"github.com/rustyeddy/chartlog/internal/logging"
	"github.com/rustyeddy/chartlog/internal/session"
	"github.com/rustyeddy/chartlog/selector"
	"github.com/rustyeddy/chartlog/tui"
	"github.com/spf13/cobra"
)

var snipCmd = &cobra.Command{
	Use:   "snip",
	Short: "Capture a screen region once",
	Long: `Capture one region and append it to the journal.

With --region the rectangle is given as two corners in screen pixels and no
UI is shown; --ticker is then required. Without --region the screen is frozen
and the region is dragged with the mouse in this terminal.

--image uses a PNG or JPEG file in place of the screen.

Examples:
  chartlog snip
  chartlog snip --region 100,100,400,300 --ticker ASELS --note "double top"
  chartlog snip --image chart.png --region 0,0,640,480 --ticker THYAO`,
	Args: cobra.NoArgs,
	RunE: runSnip,
}

var (
	snipImage  string
	snipRegion string
	snipTicker string
	snipNote   string
)

func init() {
	rootCmd.AddCommand(snipCmd)

	snipCmd.Flags().StringVarP(&snipImage, "image", "i", "", "image file to use instead of the screen")
	snipCmd.Flags().StringVarP(&snipRegion, "region", "r", "", "region corners as x0,y0,x1,y1")
	snipCmd.Flags().StringVarP(&snipTicker, "ticker", "t", "", "ticker or instrument")
	snipCmd.Flags().StringVarP(&snipNote, "note", "n", "", "note")
}

// parseRegion reads "x0,y0,x1,y1" as two drag corners.
func parseRegion(s string) (image.Point, image.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Point{}, image.Point{}, fmt.Errorf("region %q: want x0,y0,x1,y1", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Point{}, image.Point{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	return image.Pt(v[0], v[1]), image.Pt(v[2], v[3]), nil
}

// selectRegion replays a drag from a to b over base.
func selectRegion(base image.Image, a, b image.Point) (image.Image, error) {
	sel := selector.New(base)
	sel.Down(a)
	sel.Move(b)
	img, ok := sel.Up(b)
	if !ok {
		r, _ := sel.Selection()
		return nil, fmt.Errorf("selection %dx%d is smaller than %dpx", r.Dx(), r.Dy(), selector.MinSize)
	}
	return img, nil
}

func runSnip(cmd *cobra.Command, args []string) error {
	if snipRegion == "" {
		return runSnipInteractive(cmd)
	}

	a, b, err := parseRegion(snipRegion)
	if err != nil {
		return err
	}
	if strings.TrimSpace(snipTicker) == "" {
		return errors.New("--ticker is required with --region")
	}

	cfg, err := loadConfig(config.ModeSnip)
	if err != nil {
		return err
	}
	log, err := consoleLogger(cfg)
	if err != nil {
		return err
	}

	s, err := session.Open(cfg, log, snipImage)
	if err != nil {
		return err
	}
	defer s.Close()

	base, err := s.Capturer.CaptureFullScreen()
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	img, err := selectRegion(base, a, b)
	if err != nil {
		return err
	}

	res, err := s.Record(img, entry.Input{Ticker: snipTicker, Note: snipNote})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s %s -> %s\n", res.Entry.Ticker, res.Entry.Date(), res.Entry.Clock(), res.Entry.ImagePath)
	return nil
}

// runSnipInteractive runs a single flow of the capture UI.
func runSnipInteractive(cmd *cobra.Command) error {
	cfg, err := loadConfig(config.ModeSnip)
	if err != nil {
		return err
	}
	log, closer, err := logging.SetupFile(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := session.Open(cfg, log, snipImage)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(tui.Deps{
		Mode:      cfg.Mode,
		Capturer:  s.Capturer,
		Store:     s.Store,
		Flow:      s.Flow,
		TablePath: cfg.Journal.Path,
		Notifier:  s.Notifier(),
		Log:       log,
		Once:      true,
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if _, err := tui.Program(ctx, app).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("ui: %w", err)
	}
	if app.Saved() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing saved")
	}
	return nil
}
