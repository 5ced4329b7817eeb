// Package entry collects the ticker and note for a capture and appends the
// resulting row to the journal.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/chartlog/journal"
	"github.com/shopspring/decimal"
)

// Outcome classifies the result of a submit.
type Outcome int

const (
	// OutcomeSaved: the row was appended; close the form.
	OutcomeSaved Outcome = iota
	// OutcomeInvalid: input rejected; keep the form open, nothing written.
	OutcomeInvalid
	// OutcomeLocked: the table is open elsewhere; warn and keep the form
	// open for a manual retry.
	OutcomeLocked
	// OutcomeFailed: any other error; report it and close the form.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeLocked:
		return "locked"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// LockedHint is shown to the user when the table file is held open.
const LockedHint = "The journal file may be open in another program. Close it and save again."

// LockedMessage is LockedHint for the table at path, naming any owner lock
// file found next to it. Spreadsheet programs leave these behind when they
// crash, and they are hidden, so the user has to be told which one to delete.
func LockedMessage(path string) string {
	held := journal.HeldBy(path)
	if len(held) == 0 {
		return LockedHint
	}
	return fmt.Sprintf("%s If no program has it open, delete the leftover lock file %s.", LockedHint, strings.Join(held, ", "))
}

// Input is what the user typed.
type Input struct {
	Ticker string
	Price  string
	Note   string
}

// Result reports a submit.
type Result struct {
	Outcome Outcome
	Entry   journal.Entry
	// Reason explains OutcomeInvalid.
	Reason string
	// Err is set for OutcomeLocked and OutcomeFailed.
	Err error
}

// Appender is the part of journal.Table the flow needs.
type Appender interface {
	Append(journal.Entry) error
}

// Flow turns form input into journal rows.
type Flow struct {
	Table      Appender
	LastTicker LastTicker
	Now        func() time.Time
	Log        zerolog.Logger
}

// NewFlow returns a flow writing to table and remembering tickers in lastTickerPath.
func NewFlow(table Appender, lastTickerPath string, log zerolog.Logger) *Flow {
	return &Flow{
		Table:      table,
		LastTicker: LastTicker{Path: lastTickerPath},
		Now:        time.Now,
		Log:        log,
	}
}

// Prefill returns the ticker to show in a fresh form.
func (f *Flow) Prefill() string {
	return f.LastTicker.Load()
}

// Submit validates in and appends an entry for imagePath.
func (f *Flow) Submit(imagePath string, in Input) Result {
	ticker := strings.ToUpper(strings.TrimSpace(in.Ticker))
	if ticker == "" {
		return Result{Outcome: OutcomeInvalid, Reason: "ticker is required"}
	}

	price := strings.TrimSpace(in.Price)
	if price != "" {
		d, err := decimal.NewFromString(strings.ReplaceAll(price, ",", "."))
		if err != nil {
			return Result{Outcome: OutcomeInvalid, Reason: fmt.Sprintf("price %q is not a number", price)}
		}
		price = d.String()
	}

	if err := f.LastTicker.Save(ticker); err != nil {
		f.Log.Warn().Err(err).Str("path", f.LastTicker.Path).Msg("could not remember last ticker")
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	e := journal.Entry{
		Time:      now(),
		Ticker:    ticker,
		Price:     price,
		Note:      in.Note,
		ImagePath: imagePath,
	}

	err := f.Table.Append(e)
	switch {
	case err == nil:
		f.Log.Info().Str("ticker", ticker).Str("image", imagePath).Msg("entry saved")
		return Result{Outcome: OutcomeSaved, Entry: e}
	case errors.Is(err, journal.ErrLocked):
		f.Log.Warn().Err(err).Str("ticker", ticker).Msg("journal locked, entry kept for retry")
		return Result{Outcome: OutcomeLocked, Entry: e, Err: err}
	default:
		f.Log.Error().Err(err).Str("ticker", ticker).Msg("entry not saved")
		return Result{Outcome: OutcomeFailed, Entry: e, Err: err}
	}
}
