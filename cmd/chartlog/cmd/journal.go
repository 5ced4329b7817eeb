package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rustyeddy/chartlog/internal/session"
	"github.com/rustyeddy/chartlog/journal"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journal entries",
	Long: `List entries from the configured journal (xlsx, csv or sqlite).

Subcommands:
  list   - List every entry
  today  - List entries logged today
  day    - List entries logged on a specific day

Examples:
  chartlog journal list
  chartlog journal today --org
  chartlog journal day 2025-03-04 --mode quick`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every entry",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List entries logged today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List entries logged on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var (
	journalPath string
	journalMode string
	journalOrg  bool
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalPath, "file", "f", "", "journal file (default from config)")
	journalCmd.PersistentFlags().StringVarP(&journalMode, "mode", "m", "", "schema of the journal: snip or quick (default from config)")
	journalCmd.PersistentFlags().BoolVar(&journalOrg, "org", false, "print Org-mode entries")
}

func openJournal() (journal.Table, error) {
	cfg, err := loadConfig(journalMode)
	if err != nil {
		return nil, err
	}
	format, path := cfg.Journal.Format, cfg.Journal.Path
	if journalPath != "" {
		// Infer from the extension of an explicit file.
		format, path = "", journalPath
	}
	t, err := journal.Open(format, path, session.SchemaFor(cfg.Mode))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return t, nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	t, err := openJournal()
	if err != nil {
		return err
	}
	defer t.Close()

	es, err := t.Entries()
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	printEntries(cmd.OutOrStdout(), es)
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listDay(cmd, time.Now().Format(journal.DateLayout))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, args[0])
}

func listDay(cmd *cobra.Command, day string) error {
	t, err := openJournal()
	if err != nil {
		return err
	}
	defer t.Close()

	start, end, err := journal.DayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	es, err := journal.Between(t, start, end)
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	printEntries(cmd.OutOrStdout(), es)
	return nil
}

func printEntries(w io.Writer, es []journal.Entry) {
	if journalOrg {
		fmt.Fprint(w, journal.FormatEntriesOrg(es))
		return
	}
	if len(es) == 0 {
		fmt.Fprintln(w, "no entries")
		return
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2962ff")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#363a45"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("Date", "Time", "Ticker", "Price", "Note", "Image")
	for _, e := range es {
		tbl.Row(e.Date(), e.Clock(), e.Ticker, e.Price, e.Note, e.ImagePath)
	}
	fmt.Fprintln(w, tbl.Render())
	fmt.Fprintf(w, "%d entries\n", len(es))
}
