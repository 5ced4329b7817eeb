// Package journal stores chart log entries in a flat, row-per-event table.
//
// File-backed tables (xlsx, csv) are rewritten in full on every append: the
// existing table is loaded, the new row concatenated and the result written
// to a temporary file that replaces the old one. A failed append therefore
// never leaves a partial row behind.
package journal

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Layouts of the Date and Time columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Entry is one logged chart capture.
type Entry struct {
	// ID is only populated by tables that key their rows (SQLite).
	ID        string
	Time      time.Time
	Ticker    string
	Price     string
	Note      string
	ImagePath string
}

// Date returns the entry date as YYYY-MM-DD.
func (e Entry) Date() string { return e.Time.Format(DateLayout) }

// Clock returns the entry time of day as HH:MM:SS.
func (e Entry) Clock() string { return e.Time.Format(TimeLayout) }

// Table is an ordered sequence of entries sharing one schema.
type Table interface {
	Append(Entry) error
	Entries() ([]Entry, error)
	Path() string
	Close() error
}

// Open returns the table of the given format ("xlsx", "csv" or "sqlite").
// Format "" is inferred from the file extension.
func Open(format, path string, schema Schema) (Table, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch format {
	case "xlsx":
		return NewXLSX(path, schema), nil
	case "csv":
		return NewCSV(path, schema), nil
	case "sqlite", "db", "sqlite3":
		j, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return j, nil
	default:
		return nil, fmt.Errorf("unknown table format %q", format)
	}
}
